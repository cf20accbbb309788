// @title           Community Feed API
// @version         1.0
// @description     에디토리얼 글과 커뮤니티 글을 합친 피드, 좋아요, 댓글, 프로필, 관리자 검수 API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
// @description Shared administrator key.

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

	_ "community-feed-api/docs" // Swagger docs import

	"community-feed-api/internal/cache"
	"community-feed-api/internal/client"
	"community-feed-api/internal/config"
	"community-feed-api/internal/database"
	"community-feed-api/internal/job"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/router"
	"community-feed-api/internal/service"
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

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Community Feed API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT secret is empty, authenticated routes will reject every token")
	}
	if cfg.Admin.APIKey == "" {
		logger.Warn("Admin API key is empty, admin routes are disabled")
	}

	location, err := cfg.Moderation.Location()
	if err != nil {
		logger.Fatal("Invalid moderation timezone", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Interrupts during startup abort the database wait as well as the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.SafeAutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(stopDBStats)

	// Initialize feed cache
	var feedCache cache.FeedCache = cache.NoopFeedCache{}
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Failed to connect to redis, feed cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			feedCache = cache.NewRedisFeedCache(redisClient, cfg.Feed.CacheTTL, logger)
		}
	}

	// Initialize media storage. It stays a nil interface without S3 so uploads fail loudly.
	var storage client.MediaStorage
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(&cfg.S3, m)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, image uploads disabled", zap.Error(err))
		} else {
			storage = s3Client
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, image uploads disabled")
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		AdminAPIKey:    cfg.Admin.APIKey,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        m,
		Storage:        storage,
		FeedCache:      feedCache,
		Feed:           cfg.Feed,
		Profile:        cfg.Profile,
		Location:       location,
	})

	// Background jobs
	repos := repository.NewRepositories(db)
	scheduler := job.NewScheduler(logger)
	collector := metrics.NewBusinessMetricsCollector(service.NewContentStats(repos), m, logger)
	if err := scheduler.Register("business-metrics", cfg.Jobs.MetricsSpec, collector.Collect); err != nil {
		logger.Fatal("Failed to schedule business metrics job", zap.Error(err))
	}
	if storage != nil {
		cleanup := job.NewCleanupJob(repos.MediaOrphans, storage, logger)
		if err := scheduler.Register("media-cleanup", cfg.Jobs.CleanupSpec, cleanup.Run); err != nil {
			logger.Fatal("Failed to schedule media cleanup job", zap.Error(err))
		}
	}
	collector.Collect()
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
		logger.Info("Community Feed API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	stop()
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)

	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// connectDatabase blocks until the database answers or ctx is cancelled
func connectDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.ConnectWithRetry(ctx, dbConfig, 5*time.Second, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected successfully")
	return db, nil
}

// initLogger builds a JSON logger; unknown levels fall back to info
func initLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Development = lvl == zapcore.DebugLevel
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": "community-feed-api"}

	return cfg.Build()
}
