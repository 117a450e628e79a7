package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/utils"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
)

// ClientHandler - лиды: простой список и таблица с фильтрами
type ClientHandler struct {
	clientUC *usecase.ClientUseCase
	logger   *zap.Logger
}

func NewClientHandler(clientUC *usecase.ClientUseCase, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientUC: clientUC,
		logger:   logger,
	}
}

// List godoc
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param size query int false "Размер страницы" default(50)
// @Success 200 {array} domain.EnrichedClient
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var req dto.ClientListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	rows, err := h.clientUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, rows)
}

// Count godoc
// @Summary Count clients
// @Tags Clients
// @Produce json
// @Success 200 {object} dto.ClientCountResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /clients/count [get]
func (h *ClientHandler) Count(c *fiber.Ctx) error {
	res, err := h.clientUC.Count(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// TableClients godoc
// @Summary Clients table
// @Description Серверные фильтры (телефон, имя, стиль, бюджет, категория, даты) и локальные (mes, año, tipo_cliente) по текущей странице. Ошибка БД отдаётся как пустой конверт с полем error и статусом 200.
// @Tags TableData
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param size query int false "Размер страницы (до 50)" default(20)
// @Param telefono query string false "Телефон"
// @Param nombre query string false "Имя"
// @Param estilo query string false "Стиль"
// @Param presupuesto query string false "Бюджет"
// @Param categoria query string false "Категория"
// @Param fecha_desde query string false "С даты (YYYY-MM-DD или RFC3339)"
// @Param fecha_hasta query string false "По дату (YYYY-MM-DD или RFC3339)"
// @Param mes query string false "Месяц на испанском или Todos"
// @Param año query string false "Год"
// @Param tipo_cliente query string false "Con cita или Sin cita"
// @Success 200 {object} dto.TableClientsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /table-data/clients [get]
func (h *ClientHandler) TableClients(c *fiber.Ctx) error {
	var req dto.TableClientsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	res, err := h.clientUC.TableClients(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// TableMetrics godoc
// @Summary Table metrics
// @Tags TableData
// @Produce json
// @Success 200 {object} dto.TableMetricsResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /table-data/metrics [get]
func (h *ClientHandler) TableMetrics(c *fiber.Ctx) error {
	res, err := h.clientUC.TableMetrics(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// TableCharts godoc
// @Summary Table charts
// @Tags TableData
// @Produce json
// @Success 200 {object} dto.TableChartsResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /table-data/charts [get]
func (h *ClientHandler) TableCharts(c *fiber.Ctx) error {
	res, err := h.clientUC.TableCharts(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}
