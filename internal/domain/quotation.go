package domain

import (
	"time"

	"github.com/lib/pq"
)

// Quotation - строка таблицы cotizaciones
type Quotation struct {
	ID         int64          `json:"id" db:"id"`
	CreatedAt  *time.Time     `json:"created_at" db:"created_at"`
	QuotedAt   *time.Time     `json:"fecha_hora" db:"fecha_hora"`
	Name       *string        `json:"nombre" db:"nombre"`
	Phone      *string        `json:"telefono" db:"telefono"`
	Email      *string        `json:"correo" db:"correo"`
	Project    *string        `json:"proyecto" db:"proyecto"`
	Style      *string        `json:"estilo" db:"estilo"`
	Spaces     pq.StringArray `json:"espacios" db:"espacios"`
	AreaM2     *float64       `json:"area_m2" db:"area_m2"`
	Rooms      *int64         `json:"habitaciones" db:"habitaciones"`
	Timeline   *string        `json:"tiempo" db:"tiempo"`
	District   *string        `json:"distrito" db:"distrito"`
	Design     *float64       `json:"diseno" db:"diseno"`
	Furniture  *float64       `json:"mobiliario" db:"mobiliario"`
	Finishes   *float64       `json:"acabados" db:"acabados"`
	FinalPrice *float64       `json:"precio_final" db:"precio_final"`
}

// QuotationBrief - сокращённая строка для последних котировок
type QuotationBrief struct {
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	QuotedAt  *time.Time `json:"fecha_hora" db:"fecha_hora"`
	Name      *string    `json:"nombre" db:"nombre"`
	Phone     *string    `json:"telefono" db:"telefono"`
}

// QuotationQuery - параметры постраничного списка
type QuotationQuery struct {
	Page    int
	Size    int
	Q       string
	SortKey string
	SortDir string
}

// DefaultQuotationSortKey - сортировка по умолчанию
const DefaultQuotationSortKey = "fecha_hora"

// QuotationSortKeys - колонки, по которым разрешена сортировка
var QuotationSortKeys = map[string]struct{}{
	"fecha_hora":   {},
	"nombre":       {},
	"telefono":     {},
	"correo":       {},
	"proyecto":     {},
	"estilo":       {},
	"area_m2":      {},
	"habitaciones": {},
	"distrito":     {},
	"precio_final": {},
	"diseno":       {},
}

// NormalizedSort возвращает колонку из белого списка и признак убывания
func (q QuotationQuery) NormalizedSort() (string, bool) {
	key := q.SortKey
	if _, ok := QuotationSortKeys[key]; !ok {
		key = DefaultQuotationSortKey
	}
	return key, q.SortDir != "asc"
}

// Price - цена с NULL как 0
func (q *Quotation) Price() float64 {
	if q.FinalPrice == nil {
		return 0
	}
	return *q.FinalPrice
}
