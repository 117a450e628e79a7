package domain

import (
	"strings"
	"time"
)

// Уровни квалификации лида
const (
	QualificationQualified    = "5: Cliente Calificado"
	QualificationPreQualified = "4: Cliente Pre-Calificado"
	QualificationPotential    = "3: Cliente Potencial"
	QualificationInterested   = "2: Cliente Interesado"
	QualificationCold         = "1: Cliente Frío"
	QualificationNone         = "0: Sin avance"
)

// Статусы сопровождения
const (
	FollowUpNonClient = "No Cliente"
	FollowUpScheduled = "Agendado"
	FollowUpActive    = "Seguimiento"
)

// Фильтр tipo_cliente
const (
	ClientTypeWithAppointment    = "Con cita"
	ClientTypeWithoutAppointment = "Sin cita"
	FilterAll                    = "Todos"
)

// FollowUpWindow - сколько длится активное сопровождение после последнего контакта
const FollowUpWindow = 30 * 24 * time.Hour

var nonClientKeywords = []string{"proveedor", "consulta de trabajo", "mensaje raro"}

// ClientColumns - колонки clients_pravi в порядке полей Client
const ClientColumns = `id, primera_interaccion, ultima_interaccion, telefono, nombre, categoria,
	estilo, presupuesto, toma_decision, tiempo, tiempo_meses, planos, cita, calificacion,
	resumen, correo, seguimiento, ultimo_seguimiento, tipo_cliente`

// Client - лид из таблицы clients_pravi
type Client struct {
	ID               *int64     `json:"id" db:"id"`
	FirstInteraction *time.Time `json:"primera_interaccion" db:"primera_interaccion"`
	LastInteraction  *time.Time `json:"ultima_interaccion" db:"ultima_interaccion"`
	Phone            *string    `json:"telefono" db:"telefono"`
	Name             *string    `json:"nombre" db:"nombre"`
	Category         *string    `json:"categoria" db:"categoria"`
	Style            *string    `json:"estilo" db:"estilo"`
	Budget           *float64   `json:"presupuesto" db:"presupuesto"`
	DecisionMaker    *string    `json:"toma_decision" db:"toma_decision"`
	Timeline         *string    `json:"tiempo" db:"tiempo"`
	TimelineMonths   *float64   `json:"tiempo_meses" db:"tiempo_meses"`
	Plans            *string    `json:"planos" db:"planos"`
	Appointment      *time.Time `json:"cita" db:"cita"`
	Qualification    *string    `json:"calificacion" db:"calificacion"`
	Summary          *string    `json:"resumen" db:"resumen"`
	Email            *string    `json:"correo" db:"correo"`
	FollowUp         *string    `json:"seguimiento" db:"seguimiento"`
	LastFollowUp     *time.Time `json:"ultimo_seguimiento" db:"ultimo_seguimiento"`
	ClientType       *string    `json:"tipo_cliente" db:"tipo_cliente"`
}

// ClientFilter - фильтры, которые применяются на стороне БД
type ClientFilter struct {
	Phone    string
	Name     string
	Style    string
	Budget   *float64
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

// LocalClientFilter - фильтры по производным полям, применяются после выборки
type LocalClientFilter struct {
	Month      string
	Year       string
	ClientType string
}

// IsEmpty - ни один фильтр не задан
func (f LocalClientFilter) IsEmpty() bool {
	return f.Month == "" && f.Year == "" && f.ClientType == ""
}

func (c *Client) HasAppointment() bool {
	return c.Appointment != nil
}

// ComputeQualification - уровень лида по заполненности анкеты.
// Уровень 1 недостижим (категория уже даёт уровень 2), порядок правил сохранён как есть.
func (c *Client) ComputeQualification() string {
	switch {
	case c.Appointment != nil:
		return QualificationQualified
	case HasText(c.Plans):
		return QualificationPreQualified
	case HasText(c.Timeline):
		return QualificationPotential
	case HasText(c.Style) || c.Budget != nil || HasText(c.DecisionMaker) || HasText(c.Category):
		return QualificationInterested
	case HasText(c.Category):
		return QualificationCold
	default:
		return QualificationNone
	}
}

// IsNonClient - поставщики, вакансии и прочий шум
func (c *Client) IsNonClient() bool {
	combined := strings.ToLower(StringValue(c.Category) + StringValue(c.Style) + StringValue(c.Summary))
	for _, k := range nonClientKeywords {
		if strings.Contains(combined, k) {
			return true
		}
	}
	return false
}

// FollowUpStatus пересчитывает статус сопровождения на момент now
func (c *Client) FollowUpStatus(now time.Time) string {
	if c.IsNonClient() {
		return FollowUpNonClient
	}
	if StringValue(c.ClientType) == "Con Cita" {
		return FollowUpScheduled
	}
	if StringValue(c.FollowUp) == "SI" && c.LastFollowUp != nil && now.Sub(*c.LastFollowUp) <= FollowUpWindow {
		return FollowUpActive
	}
	return FollowUpNonClient
}

// FollowUpConfirmed - сырое поле seguimiento равно "SI" без учёта регистра
func (c *Client) FollowUpConfirmed() bool {
	return strings.EqualFold(strings.TrimSpace(StringValue(c.FollowUp)), "SI")
}

// MatchesLocal проверяет фильтры по месяцу, году и наличию встречи.
// Значение "Todos" и нераспознанный год фильтр не ограничивают.
func (c *Client) MatchesLocal(f LocalClientFilter, loc *time.Location) bool {
	if f.Month != "" && f.Month != FilterAll {
		month, ok := MonthByName(f.Month)
		if !ok || c.FirstInteraction == nil || c.FirstInteraction.In(loc).Month() != month {
			return false
		}
	}

	if f.Year != "" && f.Year != FilterAll {
		if year, ok := parseYear(f.Year); ok {
			if c.FirstInteraction == nil || c.FirstInteraction.In(loc).Year() != year {
				return false
			}
		}
	}

	switch f.ClientType {
	case ClientTypeWithAppointment:
		return c.HasAppointment()
	case ClientTypeWithoutAppointment:
		return !c.HasAppointment()
	}

	return true
}

// Enrich добавляет производные поля для таблицы и графиков
func (c *Client) Enrich(now time.Time, loc *time.Location) EnrichedClient {
	e := EnrichedClient{
		Client:         *c,
		Month:          UnknownMonth,
		HasAppointment: c.HasAppointment(),
		IsNonClient:    c.IsNonClient(),
		Qualification:  c.ComputeQualification(),
		FollowUpStatus: c.FollowUpStatus(now),
	}

	if c.FirstInteraction != nil {
		local := c.FirstInteraction.In(loc)
		hour, month, year := local.Hour(), int(local.Month()), local.Year()
		e.ContactHour = &hour
		e.MonthNum = &month
		e.Month = MonthName(local.Month())
		e.Year = &year
	}

	if c.Appointment != nil {
		hour := c.Appointment.In(loc).Hour()
		e.AppointmentHour = &hour
	}

	return e
}

// EnrichedClient - лид с производными полями; calificacion и seguimiento пересчитаны
type EnrichedClient struct {
	Client
	ContactHour     *int   `json:"hora_contacto"`
	MonthNum        *int   `json:"mes_num"`
	Month           string `json:"mes"`
	Year            *int   `json:"año"`
	HasAppointment  bool   `json:"tiene_cita"`
	AppointmentHour *int   `json:"hora_cita"`
	IsNonClient     bool   `json:"es_no_cliente"`
	Qualification   string `json:"calificacion"`
	FollowUpStatus  string `json:"seguimiento"`
}

// Field - строковое значение колонки для перекрёстных таблиц и распределений
func (e *EnrichedClient) Field(name string) (string, bool) {
	switch name {
	case "id":
		if e.ID == nil {
			return "", false
		}
		return formatInt(int(*e.ID)), true
	case "categoria":
		return nullableField(e.Category)
	case "estilo":
		return nullableField(e.Style)
	case "toma_decision":
		return nullableField(e.DecisionMaker)
	case "tiempo":
		return nullableField(e.Timeline)
	case "tipo_cliente":
		return nullableField(e.ClientType)
	case "calificacion":
		return e.Qualification, true
	case "seguimiento":
		return e.FollowUpStatus, true
	case "mes":
		return e.Month, true
	case "año":
		return intField(e.Year)
	case "hora_contacto":
		return intField(e.ContactHour)
	case "hora_cita":
		return intField(e.AppointmentHour)
	case "tiene_cita":
		if e.HasAppointment {
			return "True", true
		}
		return "False", true
	case "presupuesto":
		return floatField(e.Budget)
	case "tiempo_meses":
		return floatField(e.TimelineMonths)
	}
	return "", false
}

// CrossColumns - колонки, допустимые в Field
var CrossColumns = map[string]struct{}{
	"id": {}, "categoria": {}, "estilo": {}, "toma_decision": {}, "tiempo": {},
	"tipo_cliente": {}, "calificacion": {}, "seguimiento": {}, "mes": {}, "año": {},
	"hora_contacto": {}, "hora_cita": {}, "tiene_cita": {}, "presupuesto": {}, "tiempo_meses": {},
}

func nullableField(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func intField(v *int) (string, bool) {
	if v == nil {
		return "", false
	}
	return formatInt(*v), true
}

func floatField(v *float64) (string, bool) {
	if v == nil {
		return "", false
	}
	return FormatNumber(*v), true
}
