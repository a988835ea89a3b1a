package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"stockroom/internal/analytics"
	"stockroom/internal/caching"
	"stockroom/internal/common"
	"stockroom/internal/config"
	"stockroom/internal/events"
	"stockroom/internal/handlers"
	"stockroom/internal/jobs"
	"stockroom/internal/jobs/background"
	"stockroom/internal/metrics"
	"stockroom/internal/middleware"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := common.NewLogger(cfg.App.Env, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Database
	if cfg.Database.RunMigrations {
		if err := database.Migrate(cfg.Database.URL, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// JWT configuration
	if cfg.Auth.JWTSecret == "" && cfg.Auth.JWKSURL == "" {
		cfg.Auth.JWTSecret = random.String(32) // Generate random secret for development
		logger.Warn("using generated JWT secret", zap.String("secret", cfg.Auth.JWTSecret))
	}
	auth, err := middleware.NewAuthenticator(cfg.Auth, logger)
	if err != nil {
		logger.Fatal("failed to configure token verification", zap.Error(err))
	}
	defer auth.Close()

	// Redis, metrics and events
	redisClient := caching.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	defer func() { _ = redisClient.Close() }()
	cacheSvc := caching.NewRedisCacheService(redisClient)

	m := metrics.New()

	dispatcher := events.NewDispatcher(logger, []events.Sink{
		events.LogSink(logger),
		events.MetricsSink(m.EventsTotal),
		events.RedisSink(redisClient, cfg.Redis.EventsChannel),
	}, events.WithDropCounter(m.EventsDropped))
	dispatcher.Start()

	// MinIO
	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Region, cfg.Minio.UseSSL)
	if err != nil {
		logger.Fatal("failed to initialize MinIO service", zap.Error(err))
	}

	// Repositories
	storageRepo := repositories.NewStorageRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	adjustmentRepo := repositories.NewCountAdjustmentRepository(pool)
	uomRepo := repositories.NewUnitOfMeasureRepository(pool)
	snapshotRepo := repositories.NewSnapshotRepository(pool)

	// Services
	uomSvc := services.NewUnitOfMeasureService(uomRepo, dispatcher, logger)
	if _, err := uomSvc.SeedDefaults(ctx); err != nil {
		logger.Fatal("failed to seed units of measure", zap.Error(err))
	}
	storageSvc := services.NewStorageService(storageRepo, cacheSvc, dispatcher, logger)
	itemSvc := services.NewItemService(itemRepo, adjustmentRepo, storageRepo, uomRepo, cacheSvc, dispatcher, logger)
	reportSvc := services.NewReportService(snapshotRepo, minioSvc, m, services.ReportSettings{
		AppName:        cfg.App.Name,
		CurrencySymbol: cfg.Reports.CurrencySymbol,
		Bucket:         cfg.Minio.Bucket,
		URLExpiry:      cfg.Minio.URLExpiry(),
	}, logger)
	analyticsSvc := analytics.NewAnalyticsService(snapshotRepo, cacheSvc, m, logger)

	// Background jobs
	inventoryAlerts := jobs.NewInventoryAlertService(snapshotRepo, logger)
	analyticsRefresh := jobs.NewAnalyticsRefreshService(analyticsSvc, logger)
	scheduler, err := background.NewJobScheduler(inventoryAlerts, analyticsRefresh, background.Intervals{
		LowStockScan:     time.Duration(cfg.Jobs.LowStockScanMinutes) * time.Minute,
		AnalyticsRefresh: time.Duration(cfg.Jobs.AnalyticsRefreshMinutes) * time.Minute,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()

	// Handlers
	storageHandlers := handlers.NewStorageHandlers(storageSvc)
	itemHandlers := handlers.NewItemHandlers(itemSvc)
	uomHandlers := handlers.NewUnitOfMeasureHandlers(uomSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc)
	jobHandlers := handlers.NewJobHandlers(inventoryAlerts, analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(version, []handlers.HealthDependency{
		{Name: "database", Critical: true, Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
		{Name: "storage", Check: func(ctx context.Context) error {
			found, err := minioSvc.BucketExists(ctx, cfg.Minio.Bucket)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("bucket %q does not exist", cfg.Minio.Bucket)
			}
			return nil
		}},
	}, scheduler.JobNames, logger)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health and metrics endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	protected := v1.Group("")
	protected.Use(auth.Middleware())

	protected.GET("/storages", storageHandlers.ListStorages)
	protected.POST("/storages", storageHandlers.CreateStorage)
	protected.GET("/storages/:id", storageHandlers.GetStorage)
	protected.PUT("/storages/:id", storageHandlers.UpdateStorage)
	protected.DELETE("/storages/:id", storageHandlers.DeleteStorage)

	protected.GET("/items", itemHandlers.ListItems)
	protected.POST("/items", itemHandlers.CreateItem)
	protected.GET("/items/:id", itemHandlers.GetItem)
	protected.PUT("/items/:id", itemHandlers.UpdateItem)
	protected.DELETE("/items/:id", itemHandlers.DeleteItem)
	protected.POST("/items/:id/counts", itemHandlers.RecordCount)
	protected.GET("/items/:id/counts", itemHandlers.CountHistory)

	protected.GET("/uoms", uomHandlers.ListUnits)
	protected.PUT("/uoms/:id", uomHandlers.UpdateUnit)

	protected.GET("/reports/:kind", reportHandlers.GetReport)
	protected.POST("/reports/:kind/exports", reportHandlers.CreateExport)

	protected.GET("/dashboard", dashboardHandlers.GetDashboard)
	protected.POST("/dashboard/refresh", jobHandlers.TriggerAnalyticsRefresh)
	protected.GET("/alerts/low-stock", jobHandlers.GetInventoryAlerts)

	// Start server
	go func() {
		logger.Info("stockroom server starting", zap.String("version", version), zap.Int("port", cfg.Server.Port))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	if err := scheduler.Stop(); err != nil {
		logger.Error("scheduler shutdown failed", zap.Error(err))
	}
	dispatcher.Stop()
}
