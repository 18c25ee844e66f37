package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"services/notification-service/internal/config"
	"services/notification-service/internal/handler"
	"services/notification-service/internal/middleware"
	"services/notification-service/internal/repository"
	"services/notification-service/internal/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.InitSchema(db); err != nil {
		logger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	// Initialize Redis client (if enabled)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// Test Redis connection
		_, err = redisClient.Ping(context.Background()).Result()
		if err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Connected to Redis", zap.String("address", cfg.Redis.URL))
		}
	}

	// Initialize Kafka writer (if enabled)
	var kafkaWriter *kafka.Writer
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		kafkaWriter = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Kafka.Brokers...),
			Topic:    cfg.Kafka.Topic,
			Balancer: &kafka.LeastBytes{},
		}
		logger.Info("Initialized Kafka writer",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	// Create repository and services
	notificationRepo := repository.NewNotificationRepository(db, logger)
	notificationService := service.NewNotificationService(
		notificationRepo,
		redisClient,
		kafkaWriter,
		cfg.Redis.UnreadCountTTL,
		logger,
	)

	// Create HTTP server
	router := setupRouter(notificationService, cfg, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close Kafka writer if initialized
	if kafkaWriter != nil {
		kafkaWriter.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// connectToDB opens the configured database, retrying with exponential
// backoff so the service survives the database coming up after it.
func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	var driver, dsn string
	switch dbConfig.Driver {
	case "sqlite":
		driver = "sqlite"
		dsn = dbConfig.Path
	default:
		driver = "pgx"
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbConfig.Host,
			dbConfig.Port,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.DBName,
			dbConfig.SSLMode,
		)
	}

	var db *sqlx.DB
	connect := func() error {
		var err error
		db, err = sqlx.Connect(driver, dsn)
		return err
	}
	if err := backoff.Retry(connect, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	notificationService *service.NotificationService,
	cfg *config.Config,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	notificationHandler := handler.NewNotificationHandler(
		notificationService,
		cfg.Server.DefaultRedirect,
		logger,
	)

	// ==================== NOTIFICATION ROUTES ====================
	notifications := router.Group("/notifications")
	{
		notifications.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, logger))

		notifications.GET("/list", notificationHandler.List)
		notifications.GET("/count", notificationHandler.Count)
		notifications.POST("/:id/mark-read", notificationHandler.MarkRead)
		notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
		notifications.GET("/:id/view", notificationHandler.View)
	}

	// ==================== SERVICE API ====================
	// The platform's other deployables create notifications over HTTP;
	// in-process modules use the factory directly.
	serviceAPI := router.Group("/service")
	{
		serviceAPI.Use(middleware.ServiceAuthMiddleware(cfg.ServiceKey, logger))

		serviceAPI.POST("/notifications", notificationHandler.Create)
	}

	return router
}
