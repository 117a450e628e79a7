package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/validator"
	"github.com/visor-crm/internal/usecase/dto"
)

const (
	DefaultClientPageSize = 50
	DefaultTablePageSize  = 20
	TablePreviewSize      = 5

	// TableFetchErrorMessage - сообщение, с которым таблица отдаётся при сбое выборки
	TableFetchErrorMessage = "Error al obtener datos"
)

// ClientUseCase - списки и таблица лидов
type ClientUseCase struct {
	repo   repository.ClientRepository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewClientUseCase(repo repository.ClientRepository, loc *time.Location, logger *zap.Logger) *ClientUseCase {
	return &ClientUseCase{
		repo:   repo,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// List - страница лидов с производными полями
func (uc *ClientUseCase) List(ctx context.Context, req dto.ClientListRequest) ([]domain.EnrichedClient, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Size == 0 {
		req.Size = DefaultClientPageSize
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	clients, err := uc.repo.Page(ctx, req.Page, req.Size)
	if err != nil {
		uc.logger.Error("Failed to list clients", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return EnrichAll(clients, uc.now(), uc.loc), nil
}

// Count - общее число лидов
func (uc *ClientUseCase) Count(ctx context.Context) (*dto.ClientCountResponse, error) {
	total, err := uc.repo.Count(ctx)
	if err != nil {
		uc.logger.Error("Failed to count clients", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &dto.ClientCountResponse{Total: total}, nil
}

// TableClients - страница таблицы: фильтры по колонкам в БД, по производным полям локально.
// При сбое выборки возвращается пустой конверт с полем error.
func (uc *ClientUseCase) TableClients(ctx context.Context, req dto.TableClientsRequest) (*dto.TableClientsResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Size == 0 {
		req.Size = DefaultTablePageSize
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	filter, err := uc.parseFilter(req)
	if err != nil {
		return nil, err
	}

	clients, total, err := uc.repo.Paginated(ctx, req.Page, req.Size, filter)
	if err != nil {
		uc.logger.Error("Failed to fetch table clients", zap.Error(err))
		return &dto.TableClientsResponse{
			Data:  []domain.EnrichedClient{},
			Page:  req.Page,
			Size:  req.Size,
			Error: TableFetchErrorMessage,
		}, nil
	}

	local := domain.LocalClientFilter{Month: req.Month, Year: req.Year, ClientType: req.ClientType}
	rows := make([]domain.EnrichedClient, 0, len(clients))
	now := uc.now()
	for _, c := range clients {
		if !local.IsEmpty() && !c.MatchesLocal(local, uc.loc) {
			continue
		}
		rows = append(rows, c.Enrich(now, uc.loc))
	}

	return &dto.TableClientsResponse{
		Total:            total,
		Data:             rows,
		Page:             req.Page,
		Size:             req.Size,
		TotalPages:       (total + req.Size - 1) / req.Size,
		CurrentPageCount: len(rows),
		ClientStats:      CountAppointments(rows),
	}, nil
}

// TableMetrics - число строк первой страницы и первые строки
func (uc *ClientUseCase) TableMetrics(ctx context.Context) (*dto.TableMetricsResponse, error) {
	rows, err := uc.firstPage(ctx)
	if err != nil {
		return nil, err
	}

	preview := rows
	if len(preview) > TablePreviewSize {
		preview = preview[:TablePreviewSize]
	}
	return &dto.TableMetricsResponse{Total: len(rows), Preview: preview}, nil
}

// TableCharts - распределение первой страницы по стилю
func (uc *ClientUseCase) TableCharts(ctx context.Context) (*dto.TableChartsResponse, error) {
	rows, err := uc.firstPage(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, c := range rows {
		style := domain.UnknownValue
		if c.Style != nil {
			style = *c.Style
		}
		counts[style]++
	}
	return &dto.TableChartsResponse{Style: counts}, nil
}

func (uc *ClientUseCase) firstPage(ctx context.Context) ([]domain.EnrichedClient, error) {
	clients, err := uc.repo.Page(ctx, 1, DefaultClientPageSize)
	if err != nil {
		uc.logger.Error("Failed to fetch first page of clients", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return EnrichAll(clients, uc.now(), uc.loc), nil
}

func (uc *ClientUseCase) parseFilter(req dto.TableClientsRequest) (domain.ClientFilter, error) {
	filter := domain.ClientFilter{
		Phone:    strings.TrimSpace(req.Phone),
		Name:     strings.TrimSpace(req.Name),
		Style:    strings.TrimSpace(req.Style),
		Category: strings.TrimSpace(req.Category),
	}

	if s := strings.TrimSpace(req.Budget); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return filter, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"presupuesto": s})
		}
		filter.Budget = &v
	}

	if s := strings.TrimSpace(req.DateFrom); s != "" {
		t, _, err := parseDate(s, uc.loc)
		if err != nil {
			return filter, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"fecha_desde": s})
		}
		filter.DateFrom = &t
	}

	if s := strings.TrimSpace(req.DateTo); s != "" {
		t, dateOnly, err := parseDate(s, uc.loc)
		if err != nil {
			return filter, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"fecha_hasta": s})
		}
		// дата без времени включает весь день
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		filter.DateTo = &t
	}

	return filter, nil
}

// parseDate принимает RFC 3339 или YYYY-MM-DD в часовом поясе loc
func parseDate(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	return t, true, err
}

// EnrichAll добавляет производные поля ко всем лидам
func EnrichAll(clients []*domain.Client, now time.Time, loc *time.Location) []domain.EnrichedClient {
	out := make([]domain.EnrichedClient, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.Enrich(now, loc))
	}
	return out
}

// CountAppointments - число лидов со встречей и без
func CountAppointments(rows []domain.EnrichedClient) dto.ClientCounts {
	counts := dto.ClientCounts{Total: len(rows)}
	for _, c := range rows {
		if c.HasAppointment {
			counts.WithAppointment++
		}
	}
	counts.WithoutAppointment = counts.Total - counts.WithAppointment
	return counts
}
