package repository

import (
	"context"
	"time"

	"github.com/visor-crm/internal/domain"
)

// QuotationRepository - доступ к таблице cotizaciones
type QuotationRepository interface {
	// ListPage возвращает страницу с поиском и сортировкой и общее число строк
	ListPage(ctx context.Context, q domain.QuotationQuery) (int, []*domain.Quotation, error)

	// ListAll выгружает таблицу целиком порциями по chunkSize
	ListAll(ctx context.Context, chunkSize int) ([]*domain.Quotation, error)

	// AreaValues - все значения area_m2
	AreaValues(ctx context.Context) ([]*float64, error)

	// MonthTotals - число котировок и сумма precio_final за [from, to)
	MonthTotals(ctx context.Context, from, to time.Time) (int, float64, error)

	// Latest - последние котировки по fecha_hora
	Latest(ctx context.Context, limit int) ([]*domain.QuotationBrief, error)
}
