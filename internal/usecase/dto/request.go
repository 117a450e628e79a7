package dto

// QuotationListRequest - постраничный список котировок
type QuotationListRequest struct {
	Page     int    `query:"page" validate:"min=1"`
	PageSize int    `query:"page_size" validate:"min=1,max=200"`
	Q        string `query:"q"`
	SortKey  string `query:"sort_key"`
	SortDir  string `query:"sort_dir"`
}

// SeriesRequest - помесячный ряд котировок
type SeriesRequest struct {
	TZ     string `query:"tz"`
	Months int    `query:"months" validate:"omitempty,min=1,max=60"`
}

// TableClientsRequest - таблица лидов с фильтрами
type TableClientsRequest struct {
	Page       int    `query:"page" validate:"min=1"`
	Size       int    `query:"size" validate:"min=1,max=50"`
	Phone      string `query:"telefono"`
	Name       string `query:"nombre"`
	Style      string `query:"estilo"`
	Budget     string `query:"presupuesto"`
	Category   string `query:"categoria"`
	DateFrom   string `query:"fecha_desde"`
	DateTo     string `query:"fecha_hasta"`
	Month      string `query:"mes"`
	Year       string `query:"año"`
	ClientType string `query:"tipo_cliente"`
}

// ClientListRequest - простой постраничный список лидов
type ClientListRequest struct {
	Page int `query:"page" validate:"min=1"`
	Size int `query:"size" validate:"min=1,max=1000"`
}

// DashboardFilterRequest - фильтры по производным полям
type DashboardFilterRequest struct {
	Month      string `json:"mes"`
	Year       string `json:"año"`
	ClientType string `json:"tipo_cliente"`
}

// CrossRequest - перекрёстная таблица по двум колонкам; неизвестная колонка даёт {}
type CrossRequest struct {
	Col1 string `json:"col1"`
	Col2 string `json:"col2"`
}

// ConversationListRequest - список диалогов
type ConversationListRequest struct {
	Q    string `query:"q"`
	Page int    `query:"page" validate:"min=0"`
	Size int    `query:"size" validate:"min=0,max=500"`
}

// BotStatusRequest - включение или пауза бота
type BotStatusRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	IsActive  *bool  `json:"is_active" validate:"required"`
}

// AdvisorMessageRequest - сообщение от консультанта
type AdvisorMessageRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// MediaUpload - файл для отправки клиенту
type MediaUpload struct {
	SessionID string
	MediaType string
	Filename  string
	Data      []byte
}
