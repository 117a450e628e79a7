package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/worker"
)

const defaultPollInterval = 5 * time.Second

// Publisher публикует в стрим сообщения, записанные после since (n8n пишет в таблицу напрямую)
type Publisher interface {
	PublishNewSince(ctx context.Context, since time.Time) (time.Time, int, error)
}

// PollingWorker переносит новые строки n8n_chat_pravi в stream:chat:updates
type PollingWorker struct {
	*worker.BaseWorker
	publisher Publisher
	interval  time.Duration
	cursor    time.Time
}

func NewPollingWorker(publisher Publisher, interval time.Duration, logger *zap.Logger) *PollingWorker {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &PollingWorker{
		BaseWorker: worker.NewBaseWorker("chat-polling", logger),
		publisher:  publisher,
		interval:   interval,
		cursor:     time.Now().UTC(),
	}
}

// Cursor - время последнего опубликованного сообщения
func (w *PollingWorker) Cursor() time.Time {
	return w.cursor
}

func (w *PollingWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting chat polling",
		zap.Duration("interval", w.interval),
		zap.Time("cursor", w.cursor))
	return w.RunEvery(ctx, w.interval, w.Poll)
}

// Poll - одна итерация; курсор сдвигается даже при частичной ошибке
func (w *PollingWorker) Poll(ctx context.Context) error {
	last, n, err := w.publisher.PublishNewSince(ctx, w.cursor)
	if last.After(w.cursor) {
		w.cursor = last
	}
	if n > 0 {
		w.Logger().Info("Published chat messages", zap.Int("count", n), zap.Time("cursor", w.cursor))
	}
	return err
}
