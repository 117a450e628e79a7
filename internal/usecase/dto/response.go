package dto

import "github.com/visor-crm/internal/domain"

// QuotationListResponse - страница котировок
type QuotationListResponse struct {
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Data     []*domain.Quotation `json:"data"`
}

// QuotationSummary - сводные показатели котировок
type QuotationSummary struct {
	TotalQuotations int     `json:"total_cotizaciones"`
	PriceSum        float64 `json:"suma_precio"`
	AverageTicket   float64 `json:"ticket_promedio"`
	AverageArea     float64 `json:"m2_promedio"`
}

// SeriesPoint - точка помесячного ряда, X в формате YYYY-MM
type SeriesPoint struct {
	X        string  `json:"x"`
	Total    int     `json:"total"`
	PriceSum float64 `json:"suma_precio"`
}

// TopGroup - группа котировок по стилю или району
type TopGroup struct {
	Label    string  `json:"label"`
	Total    int     `json:"total"`
	PriceSum float64 `json:"suma_precio"`
	Average  float64 `json:"promedio"`
}

// ClientCountResponse - ответ /clients/count
type ClientCountResponse struct {
	Total int `json:"total"`
}

// ClientCounts - разбивка по наличию встречи
type ClientCounts struct {
	Total              int `json:"total"`
	WithAppointment    int `json:"con_cita"`
	WithoutAppointment int `json:"sin_cita"`
}

// TableClientsResponse - таблица лидов; Error заполняется только при сбое выборки
type TableClientsResponse struct {
	Total            int                     `json:"total"`
	Data             []domain.EnrichedClient `json:"data"`
	Page             int                     `json:"page"`
	Size             int                     `json:"size"`
	TotalPages       int                     `json:"total_pages"`
	CurrentPageCount int                     `json:"current_page_count"`
	ClientStats      ClientCounts            `json:"client_stats"`
	Error            string                  `json:"error,omitempty"`
}

// TableMetricsResponse - превью первой страницы
type TableMetricsResponse struct {
	Total   int                     `json:"total"`
	Preview []domain.EnrichedClient `json:"preview"`
}

// TableChartsResponse - распределение по стилю
type TableChartsResponse struct {
	Style map[string]int `json:"estilo"`
}

// MetricsSummary - карточки дашборда
type MetricsSummary struct {
	TotalClients       int `json:"total_clientes"`
	WithAppointment    int `json:"con_cita"`
	WithoutAppointment int `json:"sin_cita"`
	WithStyle          int `json:"con_estilo"`
	Qualified          int `json:"calificados"`
	FollowUp           int `json:"seguimiento"`
}

// Distribution - распределения для графиков дашборда
type Distribution struct {
	ByOrigin        map[string]int            `json:"por_origen"`
	ByMonth         map[string]int            `json:"por_mes"`
	ByQualification map[string]int            `json:"calificacion"`
	ByContactHour   map[string]int            `json:"hora_contacto"`
	CategoryVsStyle map[string]map[string]int `json:"categoria_vs_estilo"`
}

// FilteredMetricsResponse - счётчики после фильтрации
type FilteredMetricsResponse struct {
	ClientCounts ClientCounts `json:"client_counts"`
}

// FollowUpResponse - результативность сопровождения среди лидов со встречей
type FollowUpResponse struct {
	Success    int `json:"followup_success"`
	NoFollowUp int `json:"no_followup"`
}

// HourCount - число встреч в час
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// QualifiedClient - строка лида в разбивке по квалификации
type QualifiedClient struct {
	Name           *string  `json:"nombre"`
	Category       *string  `json:"categoria"`
	Style          *string  `json:"estilo"`
	Budget         *float64 `json:"presupuesto"`
	DecisionMaker  *string  `json:"toma_decision"`
	Timeline       *string  `json:"tiempo"`
	TimelineMonths *float64 `json:"tiempo_meses"`
}

// QualificationGroup - лиды одного уровня квалификации
type QualificationGroup struct {
	Count   int               `json:"count"`
	Clients []QualifiedClient `json:"clientes"`
}

// ResponseTimes - время от первого до последнего контакта, в днях
type ResponseTimes struct {
	AverageDays float64 `json:"promedio_dias"`
	MedianDays  float64 `json:"mediana_dias"`
}

// BotStatusResponse - текущий флаг бота
type BotStatusResponse struct {
	SessionID string `json:"session_id"`
	IsActive  bool   `json:"is_active"`
}

// BotStatusUpdateResponse - результат переключения бота
type BotStatusUpdateResponse struct {
	Status string                  `json:"status"`
	Data   []*domain.BotActivation `json:"data"`
}

// SendMessageResponse - результат отправки сообщения консультанта
type SendMessageResponse struct {
	Status   string                `json:"status"`
	MediaURL string                `json:"mediaUrl,omitempty"`
	Data     []*domain.ChatMessage `json:"data"`
}

// HealthResponse - состояние зависимостей
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
