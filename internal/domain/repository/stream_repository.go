package repository

import (
	"context"

	"github.com/visor-crm/internal/domain"
)

// StreamRepository - лента событий чата поверх Redis Streams (stream:chat:updates).
// Каждый экземпляр API читает ленту своей группой, поэтому все экземпляры видят все события.
type StreamRepository interface {
	// PublishToStream сериализует событие в JSON и кладёт в поле data
	PublishToStream(ctx context.Context, stream string, event interface{}) error

	// CreateConsumerGroup создаёт группу с позиции "$"; BUSYGROUP не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	DeleteConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch блокируется до таймаута чтения; пустой срез, если событий нет
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)
	AckMessages(ctx context.Context, stream, group string, ids []string) error
}
