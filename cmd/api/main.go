package main

// @title VISOR-PRAVI API
// @version 1.0.0
// @description CRM бэкенд студии интерьеров: котировки, лиды, аналитика дашборда и просмотр WhatsApp диалогов бота.
// @description
// @description Основные возможности:
// @description - Котировки: список, сводка, помесячный ряд, топы и гистограмма площадей
// @description - Лиды: таблица с фильтрами, квалификация и статус сопровождения
// @description - Дашборд: распределения, перекрёстные таблицы, время ответа
// @description - Чат: история, пауза бота, сообщения и файлы от консультанта, живая лента

// @host localhost:8000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	_ "github.com/visor-crm/docs"
	"github.com/visor-crm/internal/config"
	httpDelivery "github.com/visor-crm/internal/delivery/http"
	"github.com/visor-crm/internal/delivery/http/handler"
	"github.com/visor-crm/internal/infrastructure/media"
	"github.com/visor-crm/internal/infrastructure/whatsapp"
	"github.com/visor-crm/internal/pkg/logger"
	"github.com/visor-crm/internal/repository/cache"
	"github.com/visor-crm/internal/repository/postgres"
	redisRepo "github.com/visor-crm/internal/repository/redis"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/worker"
	"github.com/visor-crm/internal/worker/chat"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting VISOR-PRAVI API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("timezone", cfg.Dashboard.Timezone),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Repositories and external clients
	quotationRepo := postgres.NewQuotationRepository(db, log)
	clientRepo := postgres.NewClientRepository(db, log)
	chatRepo := postgres.NewChatRepository(db, log)
	botRepo := postgres.NewBotActivationRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, cfg.Worker.StreamMaxLen, log)

	mediaStore, err := media.NewLocalStore(&cfg.Media, log)
	if err != nil {
		log.Fatal("Failed to initialize media store", zap.Error(err))
	}
	messenger := whatsapp.NewClient(&cfg.WhatsApp, log)

	// 7. Use cases
	loc := cfg.Location()
	quotationUC := usecase.NewQuotationUseCase(quotationRepo, cacheRepo, cfg.Cache.HistogramTTL, cfg.Dashboard.Timezone, log)
	clientUC := usecase.NewClientUseCase(clientRepo, loc, log)
	dashboardUC := usecase.NewDashboardUseCase(clientRepo, cacheRepo, cfg.Dashboard.SampleSize, cfg.Cache.DashboardTTL, loc, log)
	chatUC := usecase.NewChatUseCase(chatRepo, botRepo, messenger, mediaStore, streamRepo, cfg.Media.MaxFileSize, log)

	// 8. Live feed
	var (
		feed    handler.LiveFeed
		workers *worker.WorkerManager
	)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if cfg.Chat.FeedEnabled {
		store := usecase.NewConversationStore(usecase.DefaultSeenEvents)
		feed = store

		workers = worker.NewWorkerManager(log)
		workers.Register(chat.NewFeedWorker(streamRepo, store, chatUC, cfg.Chat.FeedConsumerGroup, cfg.Worker.BatchSize, log))
		if err := workers.Start(workerCtx); err != nil {
			log.Fatal("Failed to start chat feed", zap.Error(err))
		}
	}

	// 9. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		}, log),
		Quotation: handler.NewQuotationHandler(quotationUC, log),
		Client:    handler.NewClientHandler(clientUC, log),
		Dashboard: handler.NewDashboardHandler(dashboardUC, log),
		Chat:      handler.NewChatHandler(chatUC, feed, cfg.Media.MaxFileSize, log),
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Bool("chat_feed", cfg.Chat.FeedEnabled),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workers != nil {
		stopWorkers()
		if err := workers.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
