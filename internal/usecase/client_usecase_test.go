package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
)

func lima(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	return loc
}

func sampleClients() []*domain.Client {
	march := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 2, 18, 0, 0, 0, time.UTC)
	cita := time.Date(2025, 3, 20, 20, 0, 0, 0, time.UTC)

	return []*domain.Client{
		{Name: ptrString("Ana"), Style: ptrString("Moderno"), FirstInteraction: ptrTime(march), Appointment: ptrTime(cita)},
		{Name: ptrString("Luis"), Style: ptrString("Clásico"), FirstInteraction: ptrTime(april)},
		{Name: ptrString("Eva"), FirstInteraction: ptrTime(march)},
	}
}

func TestClientUseCase_List(t *testing.T) {
	ctx := context.Background()
	repo := &MockClientRepository{}
	uc := usecase.NewClientUseCase(repo, lima(t), zap.NewNop())

	repo.On("Page", ctx, 1, usecase.DefaultClientPageSize).Return(sampleClients(), nil).Once()

	rows, err := uc.List(ctx, dto.ClientListRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].HasAppointment)
	assert.Equal(t, domain.QualificationQualified, rows[0].Qualification)
	assert.Equal(t, "Marzo", rows[0].Month)
}

func TestClientUseCase_Count(t *testing.T) {
	ctx := context.Background()
	repo := &MockClientRepository{}
	uc := usecase.NewClientUseCase(repo, time.UTC, zap.NewNop())

	repo.On("Count", ctx).Return(12, nil).Once()
	res, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)

	repo.On("Count", ctx).Return(0, errors.New("boom")).Once()
	_, err = uc.Count(ctx)
	assertAppError(t, err, "DATABASE_ERROR")
}

func TestClientUseCase_TableClients(t *testing.T) {
	ctx := context.Background()

	t.Run("server filters and envelope", func(t *testing.T) {
		repo := &MockClientRepository{}
		uc := usecase.NewClientUseCase(repo, lima(t), zap.NewNop())

		repo.On("Paginated", ctx, 2, 20, mock.MatchedBy(func(f domain.ClientFilter) bool {
			return f.Name == "ana" && f.Budget != nil && *f.Budget == 15000 &&
				f.DateFrom != nil && f.DateTo != nil && f.DateTo.After(*f.DateFrom)
		})).Return(sampleClients(), 45, nil).Once()

		res, err := uc.TableClients(ctx, dto.TableClientsRequest{
			Page:     2,
			Name:     " ana ",
			Budget:   "15000",
			DateFrom: "2025-03-01",
			DateTo:   "2025-03-01",
		})
		require.NoError(t, err)

		assert.Equal(t, 45, res.Total)
		assert.Equal(t, 2, res.Page)
		assert.Equal(t, 20, res.Size)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, 3, res.CurrentPageCount)
		assert.Equal(t, dto.ClientCounts{Total: 3, WithAppointment: 1, WithoutAppointment: 2}, res.ClientStats)
		assert.Empty(t, res.Error)
		repo.AssertExpectations(t)
	})

	t.Run("local filters run on fetched page", func(t *testing.T) {
		repo := &MockClientRepository{}
		uc := usecase.NewClientUseCase(repo, lima(t), zap.NewNop())
		repo.On("Paginated", ctx, 1, 20, domain.ClientFilter{}).Return(sampleClients(), 3, nil).Once()

		res, err := uc.TableClients(ctx, dto.TableClientsRequest{Month: "Marzo", ClientType: "Sin cita"})
		require.NoError(t, err)

		require.Len(t, res.Data, 1)
		assert.Equal(t, "Eva", *res.Data[0].Name)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 1, res.CurrentPageCount)
	})

	t.Run("invalid budget", func(t *testing.T) {
		repo := &MockClientRepository{}
		uc := usecase.NewClientUseCase(repo, time.UTC, zap.NewNop())

		_, err := uc.TableClients(ctx, dto.TableClientsRequest{Budget: "mucho"})
		assertAppError(t, err, "INVALID_REQUEST")
		repo.AssertNotCalled(t, "Paginated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("size above limit", func(t *testing.T) {
		repo := &MockClientRepository{}
		uc := usecase.NewClientUseCase(repo, time.UTC, zap.NewNop())

		_, err := uc.TableClients(ctx, dto.TableClientsRequest{Size: 51})
		assertAppError(t, err, "INVALID_REQUEST")
	})

	t.Run("repository failure returns zeroed envelope", func(t *testing.T) {
		repo := &MockClientRepository{}
		uc := usecase.NewClientUseCase(repo, time.UTC, zap.NewNop())
		repo.On("Paginated", ctx, 1, 20, domain.ClientFilter{}).Return(nil, 0, errors.New("boom")).Once()

		res, err := uc.TableClients(ctx, dto.TableClientsRequest{})
		require.NoError(t, err)
		assert.Equal(t, usecase.TableFetchErrorMessage, res.Error)
		assert.Zero(t, res.Total)
		assert.NotNil(t, res.Data)
		assert.Equal(t, dto.ClientCounts{}, res.ClientStats)
	})
}

func TestClientUseCase_TableMetricsAndCharts(t *testing.T) {
	ctx := context.Background()
	repo := &MockClientRepository{}
	uc := usecase.NewClientUseCase(repo, time.UTC, zap.NewNop())

	clients := sampleClients()
	for i := 0; i < 4; i++ {
		clients = append(clients, &domain.Client{Style: ptrString("Moderno")})
	}
	repo.On("Page", ctx, 1, usecase.DefaultClientPageSize).Return(clients, nil)

	metrics, err := uc.TableMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, metrics.Total)
	assert.Len(t, metrics.Preview, usecase.TablePreviewSize)

	charts, err := uc.TableCharts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Moderno": 5, "Clásico": 1, "Desconocido": 1}, charts.Style)
}
