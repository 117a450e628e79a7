package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/worker"
)

const (
	defaultFeedBatch = 50
	emptyStreamSleep = 100 * time.Millisecond
	errorSleep       = time.Second
)

// EventSink принимает события живой ленты
type EventSink interface {
	Apply(ev domain.ChatUpdateEvent) bool
	Seed(latest []*domain.ChatMessage)
}

// LatestSource - начальное состояние ленты
type LatestSource interface {
	LatestPerSession(ctx context.Context) ([]*domain.ChatMessage, error)
}

// FeedWorker читает stream:chat:updates и складывает события в EventSink.
// У каждого экземпляра API своя consumer group, поэтому все процессы видят все события.
type FeedWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	sink         EventSink
	seed         LatestSource
	group        string
	consumerName string
	batchSize    int
}

func NewFeedWorker(
	streamRepo repository.StreamRepository,
	sink EventSink,
	seed LatestSource,
	groupPrefix string,
	batchSize int,
	logger *zap.Logger,
) *FeedWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())
	if batchSize <= 0 {
		batchSize = defaultFeedBatch
	}

	return &FeedWorker{
		BaseWorker:   worker.NewBaseWorker("chat-feed", logger),
		streamRepo:   streamRepo,
		sink:         sink,
		seed:         seed,
		group:        groupPrefix + "-" + consumerName,
		consumerName: consumerName,
		batchSize:    batchSize,
	}
}

// Group - имя consumer group экземпляра
func (w *FeedWorker) Group() string {
	return w.group
}

func (w *FeedWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting chat feed",
		zap.String("consumer_group", w.group),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamChatUpdates, w.group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	defer w.cleanup()

	if w.seed != nil {
		latest, err := w.seed.LatestPerSession(ctx)
		if err != nil {
			logger.Warn("Failed to seed chat feed", zap.Error(err))
		} else {
			w.sink.Seed(latest)
		}
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Sleep(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Sleep(ctx, emptyStreamSleep)
		}
	}
}

// ProcessBatch читает и применяет одну пачку; битые события подтверждаются вместе с остальными
func (w *FeedWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamChatUpdates, w.group, w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(messages))
	applied := 0
	for _, msg := range messages {
		ids = append(ids, msg.ID)

		var ev domain.ChatUpdateEvent
		if err := json.Unmarshal([]byte(msg.Data), &ev); err != nil {
			logger.Warn("Failed to parse chat event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}
		if !ev.Validate() {
			logger.Warn("Invalid chat event, skipping", zap.String("message_id", msg.ID))
			continue
		}
		if w.sink.Apply(ev) {
			applied++
		}
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamChatUpdates, w.group, ids); err != nil {
		return len(messages), fmt.Errorf("failed to ack messages: %w", err)
	}

	logger.Debug("Chat batch processed",
		zap.Int("received", len(messages)),
		zap.Int("applied", applied))

	return len(messages), nil
}

func (w *FeedWorker) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.streamRepo.DeleteConsumerGroup(ctx, domain.StreamChatUpdates, w.group); err != nil {
		w.Logger().Warn("Failed to delete consumer group",
			zap.String("consumer_group", w.group),
			zap.Error(err))
	}
}
