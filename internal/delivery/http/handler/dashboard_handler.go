package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/utils"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
)

// DashboardHandler - аналитика по лидам
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// send - общий хвост обработчиков без параметров
func send[T any](c *fiber.Ctx, res T, err error) error {
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// Metrics godoc
// @Summary Dashboard cards
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.MetricsSummary
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	res, err := h.dashboardUC.MetricsSummary(c.Context())
	return send(c, res, err)
}

// Distribution godoc
// @Summary Distributions
// @Description Распределения по категории, месяцу, квалификации, часу контакта и категория x стиль
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.Distribution
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/distribution [get]
func (h *DashboardHandler) Distribution(c *fiber.Ctx) error {
	res, err := h.dashboardUC.Distribution(c.Context())
	return send(c, res, err)
}

// Filtered godoc
// @Summary Filtered counts
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body dto.DashboardFilterRequest true "Фильтры"
// @Success 200 {object} dto.FilteredMetricsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/filtered [post]
func (h *DashboardHandler) Filtered(c *fiber.Ctx) error {
	var req dto.DashboardFilterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
		}
	}

	res, err := h.dashboardUC.FilteredMetrics(c.Context(), req)
	return send(c, res, err)
}

// FollowUp godoc
// @Summary Follow-up among scheduled clients
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.FollowUpResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/followup [get]
func (h *DashboardHandler) FollowUp(c *fiber.Ctx) error {
	res, err := h.dashboardUC.FollowUp(c.Context())
	return send(c, res, err)
}

// AppointmentHours godoc
// @Summary Appointments by local hour
// @Tags Dashboard
// @Produce json
// @Success 200 {array} dto.HourCount
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/appointment-hours [get]
func (h *DashboardHandler) AppointmentHours(c *fiber.Ctx) error {
	res, err := h.dashboardUC.AppointmentHours(c.Context())
	return send(c, res, err)
}

// ProjectDuration godoc
// @Summary Project duration distribution
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/project-duration [get]
func (h *DashboardHandler) ProjectDuration(c *fiber.Ctx) error {
	res, err := h.dashboardUC.ProjectDuration(c.Context())
	return send(c, res, err)
}

// Cross godoc
// @Summary Custom cross table
// @Description Колонки из белого списка; неизвестная колонка даёт {}
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body dto.CrossRequest true "Колонки"
// @Success 200 {object} map[string]map[string]int
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/cross [post]
func (h *DashboardHandler) Cross(c *fiber.Ctx) error {
	var req dto.CrossRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
		}
	}

	res, err := h.dashboardUC.Cross(c.Context(), req.Col1, req.Col2)
	return send(c, res, err)
}

// NewThisMonth godoc
// @Summary New clients this month
// @Tags Dashboard
// @Produce json
// @Success 200 {integer} int
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/new-this-month [get]
func (h *DashboardHandler) NewThisMonth(c *fiber.Ctx) error {
	n, err := h.dashboardUC.NewThisMonth(c.Context())
	return send(c, n, err)
}

// ResponseTimes godoc
// @Summary Response times in days
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.ResponseTimes
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/response-times [get]
func (h *DashboardHandler) ResponseTimes(c *fiber.Ctx) error {
	res, err := h.dashboardUC.ResponseTimes(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	if res == nil {
		return utils.SendJSON(c, fiber.Map{})
	}
	return utils.SendJSON(c, res)
}

// QualificationDistribution godoc
// @Summary Clients grouped by qualification
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]dto.QualificationGroup
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/qualification-distribution [get]
func (h *DashboardHandler) QualificationDistribution(c *fiber.Ctx) error {
	res, err := h.dashboardUC.ClientsByQualification(c.Context())
	return send(c, res, err)
}
