package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/pkg/utils"
	"github.com/visor-crm/internal/usecase/dto"
)

const healthTimeout = 2 * time.Second

// RootMessage - ответ корневого маршрута
const RootMessage = "VISOR-PRAVI API is running"

// HealthChecker - зависимость, которую можно пропинговать
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler отвечает на / и /health
type HealthHandler struct {
	checks map[string]HealthChecker
	logger *zap.Logger
}

func NewHealthHandler(checks map[string]HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Root godoc
// @Summary API root
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.Map{"message": RootMessage})
}

// Health godoc
// @Summary Health check
// @Description Пингует Postgres и Redis; 503 если хотя бы один недоступен
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	res := dto.HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string, len(h.checks)),
	}
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("service", name), zap.Error(err))
			res.Services[name] = "unhealthy"
			res.Status = "degraded"
			continue
		}
		res.Services[name] = "healthy"
	}

	if res.Status != "healthy" {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return utils.SendJSON(c, res)
}
