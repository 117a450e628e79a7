package repository

import (
	"context"
	"time"

	"github.com/visor-crm/internal/domain"
)

// ChatRepository - история сообщений n8n_chat_pravi
type ChatRepository interface {
	// LatestPerSession - последнее сообщение каждой сессии, новые сверху
	LatestPerSession(ctx context.Context) ([]*domain.ChatMessage, error)

	// Messages - вся история сессии по времени
	Messages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error)

	// Since - сообщения строго после t
	Since(ctx context.Context, t time.Time) ([]*domain.ChatMessage, error)

	// Insert сохраняет сообщение и возвращает записанную строку
	Insert(ctx context.Context, sessionID string, payload domain.RawJSON) (*domain.ChatMessage, error)
}

// BotActivationRepository - флаг активности бота по сессии
type BotActivationRepository interface {
	// Get возвращает флаг и признак наличия записи
	Get(ctx context.Context, sessionID string) (active bool, found bool, err error)

	// Upsert создаёт или обновляет запись
	Upsert(ctx context.Context, sessionID string, active bool) (*domain.BotActivation, error)
}
