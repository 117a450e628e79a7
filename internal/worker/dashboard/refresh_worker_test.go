package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/pkg/histogram"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
	"github.com/visor-crm/internal/worker/dashboard"
)

type MockMetricsRefresher struct {
	mock.Mock
}

func (m *MockMetricsRefresher) RefreshMetrics(ctx context.Context) (*dto.MetricsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MetricsSummary), args.Error(1)
}

type MockHistogramRefresher struct {
	mock.Mock
}

func (m *MockHistogramRefresher) RefreshAreaHistogram(ctx context.Context, bin float64, clip bool) (*histogram.Result, error) {
	args := m.Called(ctx, bin, clip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*histogram.Result), args.Error(1)
}

func TestRefreshWorker_Refresh(t *testing.T) {
	metrics := &MockMetricsRefresher{}
	hist := &MockHistogramRefresher{}
	w := dashboard.NewRefreshWorker(metrics, hist, time.Minute, zap.NewNop())

	metrics.On("RefreshMetrics", mock.Anything).Return(&dto.MetricsSummary{}, nil).Once()
	hist.On("RefreshAreaHistogram", mock.Anything, usecase.DefaultAreaBin, true).Return(&histogram.Result{}, nil).Once()

	assert.NoError(t, w.Refresh(context.Background()))
	metrics.AssertExpectations(t)
	hist.AssertExpectations(t)
	assert.Equal(t, "dashboard-refresh", w.Name())
}

func TestRefreshWorker_RefreshError(t *testing.T) {
	metrics := &MockMetricsRefresher{}
	hist := &MockHistogramRefresher{}
	w := dashboard.NewRefreshWorker(metrics, hist, time.Minute, zap.NewNop())

	metrics.On("RefreshMetrics", mock.Anything).Return(nil, errors.New("db down")).Once()
	hist.On("RefreshAreaHistogram", mock.Anything, usecase.DefaultAreaBin, true).Return(&histogram.Result{}, nil).Maybe()

	err := w.Refresh(context.Background())
	assert.ErrorContains(t, err, "refresh metrics")
}

func TestRefreshWorker_StopsOnContextCancel(t *testing.T) {
	metrics := &MockMetricsRefresher{}
	hist := &MockHistogramRefresher{}
	w := dashboard.NewRefreshWorker(metrics, hist, time.Hour, zap.NewNop())

	metrics.On("RefreshMetrics", mock.Anything).Return(&dto.MetricsSummary{}, nil)
	hist.On("RefreshAreaHistogram", mock.Anything, mock.Anything, mock.Anything).Return(&histogram.Result{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
