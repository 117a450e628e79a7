package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
)

const quotationColumns = `id, created_at, fecha_hora, nombre, telefono, correo, proyecto, estilo,
	espacios, area_m2, habitaciones, tiempo, distrito, diseno, mobiliario, acabados, precio_final`

type quotationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewQuotationRepository создает репозиторий котировок
func NewQuotationRepository(db *DB, logger *zap.Logger) repository.QuotationRepository {
	return &quotationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *quotationRepository) ListPage(ctx context.Context, q domain.QuotationQuery) (int, []*domain.Quotation, error) {
	var where whereBuilder
	if term := strings.TrimSpace(q.Q); term != "" {
		where.add(`(nombre ILIKE $%[1]d OR telefono ILIKE $%[1]d OR correo ILIKE $%[1]d
			OR proyecto ILIKE $%[1]d OR estilo ILIKE $%[1]d OR distrito ILIKE $%[1]d)`, containsPattern(term))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM cotizaciones" + where.clause()
	if err := r.db.GetContext(ctx, &total, countQuery, where.args...); err != nil {
		return 0, nil, fmt.Errorf("count quotations: %w", err)
	}

	// колонка из белого списка, подстановка безопасна
	sortKey, desc := q.NormalizedSort()
	dir := "ASC"
	if desc {
		dir = "DESC"
	}

	n := where.next()
	query := fmt.Sprintf(
		"SELECT %s FROM cotizaciones%s ORDER BY %s %s NULLS LAST, id DESC LIMIT $%d OFFSET $%d",
		quotationColumns, where.clause(), sortKey, dir, n, n+1,
	)
	args := append(where.args, q.Size, offset(q.Page, q.Size))

	rows := make([]*domain.Quotation, 0, q.Size)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return 0, nil, fmt.Errorf("list quotations: %w", err)
	}

	return total, rows, nil
}

func (r *quotationRepository) ListAll(ctx context.Context, chunkSize int) ([]*domain.Quotation, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM cotizaciones"); err != nil {
		return nil, fmt.Errorf("count quotations: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM cotizaciones ORDER BY id LIMIT $1 OFFSET $2", quotationColumns)

	all := make([]*domain.Quotation, 0, total)
	for start := 0; start < total; start += chunkSize {
		var chunk []*domain.Quotation
		if err := r.db.SelectContext(ctx, &chunk, query, chunkSize, start); err != nil {
			return nil, fmt.Errorf("list quotations chunk at %d: %w", start, err)
		}
		all = append(all, chunk...)
		if len(chunk) < chunkSize {
			break
		}
	}

	r.logger.Debug("Quotations loaded", zap.Int("count", len(all)))
	return all, nil
}

func (r *quotationRepository) AreaValues(ctx context.Context) ([]*float64, error) {
	var values []*float64
	if err := r.db.SelectContext(ctx, &values, "SELECT area_m2 FROM cotizaciones"); err != nil {
		return nil, fmt.Errorf("select area values: %w", err)
	}
	return values, nil
}

func (r *quotationRepository) MonthTotals(ctx context.Context, from, to time.Time) (int, float64, error) {
	var row struct {
		Total int     `db:"total"`
		Sum   float64 `db:"suma"`
	}

	query := `
		SELECT COUNT(*) AS total, COALESCE(SUM(precio_final), 0)::float8 AS suma
		FROM cotizaciones
		WHERE fecha_hora >= $1 AND fecha_hora < $2
	`
	if err := r.db.GetContext(ctx, &row, query, from.UTC(), to.UTC()); err != nil {
		return 0, 0, fmt.Errorf("month totals: %w", err)
	}

	return row.Total, row.Sum, nil
}

func (r *quotationRepository) Latest(ctx context.Context, limit int) ([]*domain.QuotationBrief, error) {
	if limit <= 0 || limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}

	rows := make([]*domain.QuotationBrief, 0, limit)
	query := `
		SELECT created_at, fecha_hora, nombre, telefono
		FROM cotizaciones
		ORDER BY fecha_hora DESC NULLS LAST
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("latest quotations: %w", err)
	}

	return rows, nil
}
