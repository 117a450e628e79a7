package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/visor-crm/internal/pkg/histogram"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
	"github.com/visor-crm/internal/worker"
)

const defaultRefreshInterval = 5 * time.Minute

// MetricsRefresher пересчитывает карточки дашборда
type MetricsRefresher interface {
	RefreshMetrics(ctx context.Context) (*dto.MetricsSummary, error)
}

// HistogramRefresher пересчитывает гистограмму площадей
type HistogramRefresher interface {
	RefreshAreaHistogram(ctx context.Context, bin float64, clip bool) (*histogram.Result, error)
}

// RefreshWorker прогревает кэш дашборда и гистограммы по умолчанию
type RefreshWorker struct {
	*worker.BaseWorker
	metrics   MetricsRefresher
	histogram HistogramRefresher
	interval  time.Duration
}

func NewRefreshWorker(metrics MetricsRefresher, hist HistogramRefresher, interval time.Duration, logger *zap.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("dashboard-refresh", logger),
		metrics:    metrics,
		histogram:  hist,
		interval:   interval,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting dashboard refresh", zap.Duration("interval", w.interval))
	return w.RunEvery(ctx, w.interval, w.Refresh)
}

// Refresh обновляет оба кэша параллельно
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := w.metrics.RefreshMetrics(gctx); err != nil {
			return fmt.Errorf("refresh metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := w.histogram.RefreshAreaHistogram(gctx, usecase.DefaultAreaBin, true); err != nil {
			return fmt.Errorf("refresh histogram: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	w.Logger().Debug("Dashboard cache refreshed", zap.Duration("took", time.Since(started)))
	return nil
}
