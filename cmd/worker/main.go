package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/config"
	"github.com/visor-crm/internal/pkg/logger"
	"github.com/visor-crm/internal/repository/cache"
	"github.com/visor-crm/internal/repository/postgres"
	redisRepo "github.com/visor-crm/internal/repository/redis"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/worker"
	"github.com/visor-crm/internal/worker/chat"
	"github.com/visor-crm/internal/worker/dashboard"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting VISOR-PRAVI worker")
	log.Info("Configuration loaded",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Duration("refresh_interval", cfg.Worker.RefreshInterval),
		zap.Int64("stream_max_len", cfg.Worker.StreamMaxLen))

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

	// 5. Initialize repositories
	chatRepo := postgres.NewChatRepository(db, log)
	botRepo := postgres.NewBotActivationRepository(db, log)
	clientRepo := postgres.NewClientRepository(db, log)
	quotationRepo := postgres.NewQuotationRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, cfg.Worker.StreamMaxLen, log)

	// 6. Initialize use cases; воркеру не нужны WhatsApp и хранилище файлов
	loc := cfg.Location()
	chatUC := usecase.NewChatUseCase(chatRepo, botRepo, nil, nil, streamRepo, cfg.Media.MaxFileSize, log)
	dashboardUC := usecase.NewDashboardUseCase(clientRepo, cacheRepo, cfg.Dashboard.SampleSize, cfg.Cache.DashboardTTL, loc, log)
	quotationUC := usecase.NewQuotationUseCase(quotationRepo, cacheRepo, cfg.Cache.HistogramTTL, cfg.Dashboard.Timezone, log)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(
		chat.NewPollingWorker(chatUC, cfg.Worker.PollInterval, log),
		dashboard.NewRefreshWorker(dashboardUC, quotationUC, cfg.Worker.RefreshInterval, log),
	)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
