package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/histogram"
	"github.com/visor-crm/internal/usecase/dto"
)

// MetricsCacheKey - ключ кеша карточек дашборда
const MetricsCacheKey = "dashboard:metrics"

const secondsPerDay = 24 * 60 * 60

// DashboardUseCase - аналитика по последним лидам
type DashboardUseCase struct {
	clientRepo repository.ClientRepository
	cacheRepo  repository.CacheRepository
	sampleSize int
	cacheTTL   time.Duration
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewDashboardUseCase(
	clientRepo repository.ClientRepository,
	cacheRepo repository.CacheRepository,
	sampleSize int,
	cacheTTL time.Duration,
	loc *time.Location,
	logger *zap.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		clientRepo: clientRepo,
		cacheRepo:  cacheRepo,
		sampleSize: sampleSize,
		cacheTTL:   cacheTTL,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// dataset - последние sampleSize лидов с производными полями
func (uc *DashboardUseCase) dataset(ctx context.Context) ([]domain.EnrichedClient, error) {
	clients, err := uc.clientRepo.Page(ctx, 1, uc.sampleSize)
	if err != nil {
		uc.logger.Error("Failed to load dashboard dataset", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return EnrichAll(clients, uc.now(), uc.loc), nil
}

// MetricsSummary возвращает карточки дашборда, используя кеш когда возможно
func (uc *DashboardUseCase) MetricsSummary(ctx context.Context) (*dto.MetricsSummary, error) {
	// 1. Проверяем кеш
	var cached dto.MetricsSummary
	found, err := uc.cacheRepo.GetJSON(ctx, MetricsCacheKey, &cached)
	if err != nil {
		uc.logger.Warn("Failed to get metrics from cache", zap.Error(err))
	}
	if found {
		uc.logger.Debug("Metrics fetched from cache")
		return &cached, nil
	}

	// 2. Считаем по БД и кешируем
	return uc.RefreshMetrics(ctx)
}

// RefreshMetrics принудительно пересчитывает карточки и обновляет кеш
func (uc *DashboardUseCase) RefreshMetrics(ctx context.Context) (*dto.MetricsSummary, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}

	summary := SummarizeClients(rows)

	if err := uc.cacheRepo.SetJSON(ctx, MetricsCacheKey, summary, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache metrics", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return summary, nil
}

// SummarizeClients считает карточки по набору лидов
func SummarizeClients(rows []domain.EnrichedClient) *dto.MetricsSummary {
	s := &dto.MetricsSummary{TotalClients: len(rows)}
	for _, c := range rows {
		if c.HasAppointment {
			s.WithAppointment++
		}
		if c.Style != nil {
			s.WithStyle++
		}
		if c.Qualification != domain.QualificationNone {
			s.Qualified++
		}
		if c.FollowUpStatus == domain.FollowUpActive {
			s.FollowUp++
		}
	}
	s.WithoutAppointment = s.TotalClients - s.WithAppointment
	return s
}

// Distribution - распределения для графиков
func (uc *DashboardUseCase) Distribution(ctx context.Context) (*dto.Distribution, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.Distribution{
		ByOrigin:        countBy(rows, "categoria"),
		ByMonth:         countByMonth(rows),
		ByQualification: countBy(rows, "calificacion"),
		ByContactHour:   countBy(rows, "hora_contacto"),
		CategoryVsStyle: CrossTable(rows, "categoria", "estilo"),
	}, nil
}

// FilteredMetrics - счётчики после фильтров по месяцу, году и наличию встречи
func (uc *DashboardUseCase) FilteredMetrics(ctx context.Context, req dto.DashboardFilterRequest) (*dto.FilteredMetricsResponse, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}

	filter := domain.LocalClientFilter{Month: req.Month, Year: req.Year, ClientType: req.ClientType}
	kept := make([]domain.EnrichedClient, 0, len(rows))
	for _, c := range rows {
		if c.MatchesLocal(filter, uc.loc) {
			kept = append(kept, c)
		}
	}

	return &dto.FilteredMetricsResponse{ClientCounts: CountAppointments(kept)}, nil
}

// FollowUp - подтверждённое сопровождение среди лидов со встречей
func (uc *DashboardUseCase) FollowUp(ctx context.Context) (*dto.FollowUpResponse, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.FollowUpResponse{}
	for _, c := range rows {
		if !c.HasAppointment {
			continue
		}
		if c.FollowUpConfirmed() {
			res.Success++
		} else {
			res.NoFollowUp++
		}
	}
	return res, nil
}

// ClientsByQualification - лиды, сгруппированные по уровню квалификации
func (uc *DashboardUseCase) ClientsByQualification(ctx context.Context) (map[string]*dto.QualificationGroup, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*dto.QualificationGroup)
	for _, c := range rows {
		g, ok := groups[c.Qualification]
		if !ok {
			g = &dto.QualificationGroup{Clients: []dto.QualifiedClient{}}
			groups[c.Qualification] = g
		}
		g.Count++
		g.Clients = append(g.Clients, dto.QualifiedClient{
			Name:           c.Name,
			Category:       c.Category,
			Style:          c.Style,
			Budget:         c.Budget,
			DecisionMaker:  c.DecisionMaker,
			Timeline:       c.Timeline,
			TimelineMonths: c.TimelineMonths,
		})
	}
	return groups, nil
}

// AppointmentHours - число встреч по каждому часу местного времени, всегда 24 элемента
func (uc *DashboardUseCase) AppointmentHours(ctx context.Context) ([]dto.HourCount, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}

	hours := make([]dto.HourCount, 24)
	for h := range hours {
		hours[h].Hour = h
	}
	for _, c := range rows {
		if c.AppointmentHour != nil {
			hours[*c.AppointmentHour].Count++
		}
	}
	return hours, nil
}

// ProjectDuration - распределение по сроку проекта в месяцах
func (uc *DashboardUseCase) ProjectDuration(ctx context.Context) (map[string]int, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return countBy(rows, "tiempo_meses"), nil
}

// Cross - перекрёстная таблица по двум колонкам; неизвестная колонка даёт пустой результат
func (uc *DashboardUseCase) Cross(ctx context.Context, col1, col2 string) (map[string]map[string]int, error) {
	_, ok1 := domain.CrossColumns[col1]
	_, ok2 := domain.CrossColumns[col2]
	if !ok1 || !ok2 {
		return map[string]map[string]int{}, nil
	}

	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return CrossTable(rows, col1, col2), nil
}

// NewThisMonth - лиды, впервые написавшие в текущем месяце по местному времени
func (uc *DashboardUseCase) NewThisMonth(ctx context.Context) (int, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return 0, err
	}

	now := uc.now().In(uc.loc)
	count := 0
	for _, c := range rows {
		if c.MonthNum != nil && c.Year != nil && *c.MonthNum == int(now.Month()) && *c.Year == now.Year() {
			count++
		}
	}
	return count, nil
}

// ResponseTimes - среднее и медиана дней между первым и последним контактом; nil без данных
func (uc *DashboardUseCase) ResponseTimes(ctx context.Context) (*dto.ResponseTimes, error) {
	rows, err := uc.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ResponseTimesOf(rows), nil
}

// ResponseTimesOf считает время ответа по набору лидов
func ResponseTimesOf(rows []domain.EnrichedClient) *dto.ResponseTimes {
	days := make([]float64, 0, len(rows))
	sum := 0.0
	for _, c := range rows {
		if c.FirstInteraction == nil || c.LastInteraction == nil {
			continue
		}
		d := c.LastInteraction.Sub(*c.FirstInteraction).Seconds() / secondsPerDay
		days = append(days, d)
		sum += d
	}

	if len(days) == 0 {
		return nil
	}

	return &dto.ResponseTimes{
		AverageDays: domain.Round2(sum / float64(len(days))),
		MedianDays:  domain.Round2(histogram.Percentile(days, 50)),
	}
}

// CrossTable - число лидов по парам значений; строки по col1, колонки по col2.
// Лиды без значения в одной из колонок не учитываются, отсутствующие пары дают 0.
func CrossTable(rows []domain.EnrichedClient, col1, col2 string) map[string]map[string]int {
	table := make(map[string]map[string]int)
	columns := make(map[string]struct{})

	for i := range rows {
		v1, ok1 := rows[i].Field(col1)
		v2, ok2 := rows[i].Field(col2)
		if !ok1 || !ok2 {
			continue
		}
		row, ok := table[v1]
		if !ok {
			row = make(map[string]int)
			table[v1] = row
		}
		row[v2]++
		columns[v2] = struct{}{}
	}

	for _, row := range table {
		for col := range columns {
			if _, ok := row[col]; !ok {
				row[col] = 0
			}
		}
	}
	return table
}

func countBy(rows []domain.EnrichedClient, column string) map[string]int {
	counts := make(map[string]int)
	for i := range rows {
		if v, ok := rows[i].Field(column); ok {
			counts[v]++
		}
	}
	return counts
}

func countByMonth(rows []domain.EnrichedClient) map[string]int {
	counts := make(map[string]int)
	for _, c := range rows {
		if c.MonthNum != nil {
			counts[c.Month]++
		}
	}
	return counts
}
