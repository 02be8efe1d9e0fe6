// @title           Study Team API
// @version         1.0
// @description     주차별 스터디 팀, 게시글, 댓글, 알림 API

// @contact.name   API Support

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "study-team-api/docs" // Swagger docs import

	"study-team-api/internal/auth"
	"study-team-api/internal/client"
	"study-team-api/internal/config"
	"study-team-api/internal/database"
	"study-team-api/internal/imagegc"
	"study-team-api/internal/job"
	"study-team-api/internal/metrics"
	"study-team-api/internal/realtime"
	"study-team-api/internal/repository"
	"study-team-api/internal/router"
	"study-team-api/internal/service"
	"study-team-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Study Team API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("upload_backend", cfg.Upload.Backend),
	)

	// Initialize metrics
	m := metrics.New()
	logger.Info("Metrics initialized")

	// Initialize database (실패해도 앱은 시작됨 - 백그라운드 재연결)
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.Open(dbConfig)
	if err != nil {
		logger.Fatal("Invalid database configuration", zap.Error(err))
	}
	database.RegisterMetricsCallbacks(db, m)
	stopDBStats := database.StartDBStatsCollector(db, m)

	migrate := func(db *gorm.DB) error {
		return database.SafeAutoMigrateWithRetry(db, logger, 3)
	}
	if err := database.Ping(db); err != nil {
		logger.Warn("⚠️  Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(db, 5*time.Second, logger, migrate)
	} else {
		logger.Info("Database connected successfully")
		if err := migrate(db); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
		database.SetDB(db)
	}

	// Redis is optional: the unread count is served straight from the database without it
	if err := database.InitRedis(*cfg, logger); err != nil {
		logger.Warn("Redis unavailable, unread count cache disabled", zap.Error(err))
	}
	redisClient := database.GetRedis()

	businessCollector := metrics.NewBusinessMetricsCollector(db, m, logger)
	businessCollector.Start()

	// Initialize image storage
	store, err := newStore(cfg, m, logger)
	if err != nil {
		logger.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	collector := imagegc.NewCollector(store, repository.NewPostRepository(db), cfg.Upload.URLPrefix, m, logger)

	hub := realtime.NewHub(logger)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Metrics:        m,
		Tokens:         tokens,
		Store:          store,
		Collector:      collector,
		Hub:            hub,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CookieName:     cfg.JWT.CookieName,
		CookieSecure:   cfg.JWT.Secure,
		Upload:         cfg.Upload,
		UnreadCacheTTL: cfg.Redis.UnreadCacheTTL,
		Admins:         cfg.Admin,
	})

	// Background jobs
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), redisClient, cfg.Redis.UnreadCacheTTL, nil, m, logger)
	scheduler, err := job.NewScheduler(cfg.Jobs, collector, notifications, logger)
	if err != nil {
		logger.Fatal("Failed to schedule background jobs", zap.Error(err))
	}
	scheduler.Start()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Study Team API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	<-scheduler.Stop().Done()
	businessCollector.Stop()
	close(stopDBStats)

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// newStore builds the image store for the configured upload backend
func newStore(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (storage.Store, error) {
	if cfg.Upload.Backend != "s3" {
		logger.Info("Using local image storage", zap.String("dir", cfg.Upload.Dir))
		return storage.NewLocalStore(cfg.Upload.Dir), nil
	}

	s3Client, err := client.NewS3Client(&cfg.S3, m)
	if err != nil {
		return nil, err
	}
	logger.Info("S3 client initialized",
		zap.String("bucket", cfg.S3.Bucket),
		zap.String("region", cfg.S3.Region),
	)
	return storage.NewS3Store(s3Client, cfg.S3.Prefix), nil
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
