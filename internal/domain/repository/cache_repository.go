package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах даёт nil без ошибки
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значения из кеша
	Delete(ctx context.Context, keys ...string) error

	// GetJSON читает значение и раскладывает его в dest; false при промахе
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)

	// SetJSON сериализует value и сохраняет с TTL
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
