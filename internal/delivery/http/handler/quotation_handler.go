package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/utils"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
)

// QuotationHandler - котировки и их метрики
type QuotationHandler struct {
	quotationUC *usecase.QuotationUseCase
	logger      *zap.Logger
}

func NewQuotationHandler(quotationUC *usecase.QuotationUseCase, logger *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationUC: quotationUC,
		logger:      logger,
	}
}

// List godoc
// @Summary List quotations
// @Description Постраничный список котировок с поиском по имени, телефону, стилю и району
// @Tags Quotations
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param page_size query int false "Размер страницы (1-200)" default(30)
// @Param q query string false "Поиск"
// @Param sort_key query string false "Колонка сортировки" default(fecha_hora)
// @Param sort_dir query string false "asc или desc" default(desc)
// @Success 200 {object} dto.QuotationListResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var req dto.QuotationListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	res, err := h.quotationUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// Latest godoc
// @Summary Last five quotations
// @Tags Quotations
// @Produce json
// @Success 200 {array} domain.QuotationBrief
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones/test/last5 [get]
func (h *QuotationHandler) Latest(c *fiber.Ctx) error {
	rows, err := h.quotationUC.Latest(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, rows)
}

// Summary godoc
// @Summary Quotation summary
// @Description Количество, сумма, средний чек и средняя площадь
// @Tags Quotations
// @Produce json
// @Success 200 {object} dto.QuotationSummary
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones/metrics/summary [get]
func (h *QuotationHandler) Summary(c *fiber.Ctx) error {
	res, err := h.quotationUC.Summary(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// SeriesMonthly godoc
// @Summary Monthly series
// @Description Количество и сумма котировок по месяцам в локальной зоне
// @Tags Quotations
// @Produce json
// @Param tz query string false "IANA зона" default(America/Lima)
// @Param months query int false "Сколько месяцев назад (1-60)" default(12)
// @Success 200 {array} dto.SeriesPoint
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones/metrics/series/monthly [get]
func (h *QuotationHandler) SeriesMonthly(c *fiber.Ctx) error {
	var req dto.SeriesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	points, err := h.quotationUC.SeriesMonthly(c.Context(), req.TZ, req.Months)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, points)
}

// TopByStyle godoc
// @Summary Top styles by revenue
// @Tags Quotations
// @Produce json
// @Param limit query int false "Количество групп" default(5)
// @Success 200 {array} dto.TopGroup
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones/metrics/top/estilo [get]
func (h *QuotationHandler) TopByStyle(c *fiber.Ctx) error {
	groups, err := h.quotationUC.TopByStyle(c.Context(), c.QueryInt("limit", usecase.DefaultTopLimit))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, groups)
}

// TopByDistrict godoc
// @Summary Top districts by revenue
// @Tags Quotations
// @Produce json
// @Param limit query int false "Количество групп" default(5)
// @Success 200 {array} dto.TopGroup
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones/metrics/top/distrito [get]
func (h *QuotationHandler) TopByDistrict(c *fiber.Ctx) error {
	groups, err := h.quotationUC.TopByDistrict(c.Context(), c.QueryInt("limit", usecase.DefaultTopLimit))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, groups)
}

// AreaHistogram godoc
// @Summary Area histogram
// @Description Гистограмма площадей с фиксированной шириной корзины; clip оставляет только значения в замкнутом интервале [P1, P99] (от 20 значений); слишком мелкий bin даёт 400
// @Tags Quotations
// @Produce json
// @Param bin query number false "Ширина корзины, м2" default(5)
// @Param clip query bool false "Отсекать выбросы" default(true)
// @Success 200 {object} histogram.Result
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /cotizaciones/metrics/histogram/area [get]
func (h *QuotationHandler) AreaHistogram(c *fiber.Ctx) error {
	bin := usecase.DefaultAreaBin
	if raw := c.Query("bin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidArgument.WithMessage("bin must be a positive number"))
		}
		bin = v
	}

	res, err := h.quotationUC.AreaHistogram(c.Context(), bin, c.QueryBool("clip", true))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}
