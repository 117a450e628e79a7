package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/histogram"
	"github.com/visor-crm/internal/pkg/validator"
	"github.com/visor-crm/internal/usecase/dto"
)

const (
	DefaultQuotationPageSize = 30
	DefaultSeriesMonths      = 12
	DefaultTopLimit          = 5
	DefaultAreaBin           = 5.0
	LatestQuotationsLimit    = 5

	// MissingGroupLabel - подпись группы для котировок без стиля или района
	MissingGroupLabel = "—"

	quotationChunkSize = 2000
)

// HistogramCacheKey - ключ кеша гистограммы площадей
func HistogramCacheKey(bin float64, clip bool) string {
	return fmt.Sprintf("histogram:area:%s:%t", strconv.FormatFloat(bin, 'f', -1, 64), clip)
}

// QuotationUseCase - список котировок и метрики для дашборда котировок
type QuotationUseCase struct {
	repo         repository.QuotationRepository
	cacheRepo    repository.CacheRepository
	histogramTTL time.Duration
	defaultTZ    string
	logger       *zap.Logger
}

func NewQuotationUseCase(
	repo repository.QuotationRepository,
	cacheRepo repository.CacheRepository,
	histogramTTL time.Duration,
	defaultTZ string,
	logger *zap.Logger,
) *QuotationUseCase {
	return &QuotationUseCase{
		repo:         repo,
		cacheRepo:    cacheRepo,
		histogramTTL: histogramTTL,
		defaultTZ:    defaultTZ,
		logger:       logger,
	}
}

// List - страница с поиском и сортировкой
func (uc *QuotationUseCase) List(ctx context.Context, req dto.QuotationListRequest) (*dto.QuotationListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = DefaultQuotationPageSize
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	total, rows, err := uc.repo.ListPage(ctx, domain.QuotationQuery{
		Page:    req.Page,
		Size:    req.PageSize,
		Q:       strings.TrimSpace(req.Q),
		SortKey: req.SortKey,
		SortDir: strings.ToLower(req.SortDir),
	})
	if err != nil {
		uc.logger.Error("Failed to list quotations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if rows == nil {
		rows = []*domain.Quotation{}
	}

	return &dto.QuotationListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Data:     rows,
	}, nil
}

// Summary - общее число, сумма, средний чек и средняя площадь
func (uc *QuotationUseCase) Summary(ctx context.Context) (*dto.QuotationSummary, error) {
	rows, err := uc.repo.ListAll(ctx, quotationChunkSize)
	if err != nil {
		uc.logger.Error("Failed to load quotations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	summary := &dto.QuotationSummary{}
	if len(rows) == 0 {
		return summary, nil
	}

	areaSum, areaN := 0.0, 0
	for _, q := range rows {
		summary.PriceSum += q.Price()
		if q.AreaM2 != nil {
			areaSum += *q.AreaM2
			areaN++
		}
	}

	summary.TotalQuotations = len(rows)
	summary.AverageTicket = summary.PriceSum / float64(len(rows))
	if areaN > 0 {
		summary.AverageArea = areaSum / float64(areaN)
	}

	return summary, nil
}

// SeriesMonthly - число и сумма котировок за каждый из последних months месяцев по местному времени
func (uc *QuotationUseCase) SeriesMonthly(ctx context.Context, tz string, months int) ([]dto.SeriesPoint, error) {
	if tz == "" {
		tz = uc.defaultTZ
	}
	if months <= 0 {
		months = DefaultSeriesMonths
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.ErrInvalidTimezone.WithDetails(map[string]interface{}{"tz": tz})
	}

	now := time.Now().In(loc)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	points := make([]dto.SeriesPoint, months)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < months; i++ {
		i := i
		from := current.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		g.Go(func() error {
			count, sum, err := uc.repo.MonthTotals(gctx, from.UTC(), to.UTC())
			if err != nil {
				return fmt.Errorf("month totals %s: %w", from.Format("2006-01"), err)
			}
			points[i] = dto.SeriesPoint{X: from.Format("2006-01"), Total: count, PriceSum: sum}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to build monthly series", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
	return points, nil
}

// TopByStyle - группы по стилю с наибольшей суммой
func (uc *QuotationUseCase) TopByStyle(ctx context.Context, limit int) ([]dto.TopGroup, error) {
	return uc.top(ctx, limit, func(q *domain.Quotation) *string { return q.Style })
}

// TopByDistrict - группы по району с наибольшей суммой
func (uc *QuotationUseCase) TopByDistrict(ctx context.Context, limit int) ([]dto.TopGroup, error) {
	return uc.top(ctx, limit, func(q *domain.Quotation) *string { return q.District })
}

func (uc *QuotationUseCase) top(ctx context.Context, limit int, key func(*domain.Quotation) *string) ([]dto.TopGroup, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	rows, err := uc.repo.ListAll(ctx, quotationChunkSize)
	if err != nil {
		uc.logger.Error("Failed to load quotations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return GroupQuotations(rows, key, limit), nil
}

// GroupQuotations группирует котировки по ключу и возвращает limit групп с наибольшей суммой.
// При равной сумме группы идут по подписи.
func GroupQuotations(rows []*domain.Quotation, key func(*domain.Quotation) *string, limit int) []dto.TopGroup {
	type acc struct {
		group  dto.TopGroup
		priced int
	}

	byLabel := make(map[string]*acc)
	for _, q := range rows {
		label := MissingGroupLabel
		if v := key(q); v != nil {
			label = *v
		}

		a, ok := byLabel[label]
		if !ok {
			a = &acc{group: dto.TopGroup{Label: label}}
			byLabel[label] = a
		}
		a.group.Total++
		a.group.PriceSum += q.Price()
		if q.FinalPrice != nil {
			a.priced++
		}
	}

	groups := make([]dto.TopGroup, 0, len(byLabel))
	for _, a := range byLabel {
		if a.priced > 0 {
			a.group.Average = a.group.PriceSum / float64(a.priced)
		}
		groups = append(groups, a.group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].PriceSum != groups[j].PriceSum {
			return groups[i].PriceSum > groups[j].PriceSum
		}
		return groups[i].Label < groups[j].Label
	})

	if len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// AreaHistogram - гистограмма площадей, используя кеш когда возможно
func (uc *QuotationUseCase) AreaHistogram(ctx context.Context, bin float64, clip bool) (*histogram.Result, error) {
	if err := checkBin(bin); err != nil {
		return nil, err
	}

	key := HistogramCacheKey(bin, clip)

	var cached histogram.Result
	found, err := uc.cacheRepo.GetJSON(ctx, key, &cached)
	if err != nil {
		uc.logger.Warn("Failed to get histogram from cache", zap.String("key", key), zap.Error(err))
	}
	if found {
		uc.logger.Debug("Histogram fetched from cache", zap.String("key", key))
		return &cached, nil
	}

	return uc.RefreshAreaHistogram(ctx, bin, clip)
}

// RefreshAreaHistogram пересчитывает гистограмму и обновляет кеш
func (uc *QuotationUseCase) RefreshAreaHistogram(ctx context.Context, bin float64, clip bool) (*histogram.Result, error) {
	if err := checkBin(bin); err != nil {
		return nil, err
	}

	areas, err := uc.repo.AreaValues(ctx)
	if err != nil {
		uc.logger.Error("Failed to load area values", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	result, err := histogram.Build(histogram.FromNullable(areas), bin, clip)
	if stderrors.Is(err, histogram.ErrTooManyBins) {
		return nil, errors.ErrInvalidArgument.
			WithMessage("bin is too small for the area range").
			WithDetails(map[string]interface{}{"bin": bin, "max_bins": histogram.MaxBins})
	}
	if err != nil {
		return nil, fmt.Errorf("build histogram: %w", err)
	}

	key := HistogramCacheKey(bin, clip)
	if err := uc.cacheRepo.SetJSON(ctx, key, result, uc.histogramTTL); err != nil {
		uc.logger.Warn("Failed to cache histogram", zap.String("key", key), zap.Error(err))
	}

	return result, nil
}

func checkBin(bin float64) error {
	if _, err := histogram.Build(nil, bin, false); stderrors.Is(err, histogram.ErrInvalidArgument) {
		return errors.ErrInvalidArgument.WithMessage("bin must be a positive number")
	}
	return nil
}

// Latest - последние котировки
func (uc *QuotationUseCase) Latest(ctx context.Context) ([]*domain.QuotationBrief, error) {
	rows, err := uc.repo.Latest(ctx, LatestQuotationsLimit)
	if err != nil {
		uc.logger.Error("Failed to load latest quotations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if rows == nil {
		rows = []*domain.QuotationBrief{}
	}
	return rows, nil
}
