package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/config"
	"github.com/visor-crm/internal/delivery/http/handler"
	"github.com/visor-crm/internal/delivery/http/middleware"
	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/utils"
)

// bodyOverhead - запас под multipart заголовки и поля сверх самого файла
const bodyOverhead = 1 << 20

// Handlers - все обработчики API
type Handlers struct {
	Health    *handler.HealthHandler
	Quotation *handler.QuotationHandler
	Client    *handler.ClientHandler
	Dashboard *handler.DashboardHandler
	Chat      *handler.ChatHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "VISOR-PRAVI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    int(cfg.Media.MaxFileSize) + bodyOverhead,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Static("/media", s.config.Media.Dir)

	s.app.Get("/", h.Health.Root)
	s.app.Get("/health", h.Health.Health)

	dashboard := s.app.Group("/dashboard")
	dashboard.Get("/metrics", h.Dashboard.Metrics)
	dashboard.Get("/distribution", h.Dashboard.Distribution)
	dashboard.Post("/filtered", h.Dashboard.Filtered)
	dashboard.Get("/followup", h.Dashboard.FollowUp)
	dashboard.Get("/appointment-hours", h.Dashboard.AppointmentHours)
	dashboard.Get("/project-duration", h.Dashboard.ProjectDuration)
	dashboard.Post("/cross", h.Dashboard.Cross)
	dashboard.Get("/new-this-month", h.Dashboard.NewThisMonth)
	dashboard.Get("/response-times", h.Dashboard.ResponseTimes)
	dashboard.Get("/qualification-distribution", h.Dashboard.QualificationDistribution)

	table := s.app.Group("/table-data")
	table.Get("/metrics", h.Client.TableMetrics)
	table.Get("/charts", h.Client.TableCharts)
	table.Get("/clients", h.Client.TableClients)

	clients := s.app.Group("/clients")
	clients.Get("/", h.Client.List)
	clients.Get("/count", h.Client.Count)

	chat := s.app.Group("/chat")
	chat.Get("/conversation", h.Chat.Conversations)
	chat.Get("/messages/:session_id", h.Chat.Messages)
	chat.Get("/updates", h.Chat.Updates)
	chat.Get("/live", h.Chat.Live)
	chat.Get("/bot-status/:session_id", h.Chat.BotStatus)
	chat.Post("/bot-status", h.Chat.SetBotStatus)
	chat.Post("/send-advisor-message", h.Chat.SendAdvisorMessage)
	chat.Post("/send-media", h.Chat.SendMedia)

	quotations := s.app.Group("/cotizaciones")
	quotations.Get("/", h.Quotation.List)
	quotations.Get("/test/last5", h.Quotation.Latest)
	quotations.Get("/metrics/summary", h.Quotation.Summary)
	quotations.Get("/metrics/series/monthly", h.Quotation.SeriesMonthly)
	quotations.Get("/metrics/top/estilo", h.Quotation.TopByStyle)
	quotations.Get("/metrics/top/distrito", h.Quotation.TopByDistrict)
	quotations.Get("/metrics/histogram/area", h.Quotation.AreaHistogram)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные в хендлерах
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New("HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr = errors.ErrNotFound.WithMessage(e.Message)
			}
			return utils.SendError(c, appErr)
		}

		if _, ok := errors.As(err); !ok {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return utils.SendError(c, err)
	}
}
