package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/adityarizkyr/reviora/config"
	apihandler "github.com/adityarizkyr/reviora/internal/handler/api"
	"github.com/adityarizkyr/reviora/internal/repository/postgres"
	redisrepo "github.com/adityarizkyr/reviora/internal/repository/redis"
	"github.com/adityarizkyr/reviora/internal/usecase"
	"github.com/adityarizkyr/reviora/internal/worker"
	"github.com/adityarizkyr/reviora/pkg/auth"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/observability"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.App.Environment)
	defer logger.Close()

	xresponse.SetDevelopmentMode(cfg.App.IsDevelopment())

	// Initialize database connection
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.Close()

	db.SetMaxIdleConns(cfg.Database.MaxIdle)
	db.SetMaxOpenConns(cfg.Database.MaxOpen)
	db.SetConnMaxLifetime(cfg.Database.MaxLife)

	// Initialize Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// Test Redis connection
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer rdb.Close()

	logger.Info("Database and Redis connections established")

	// Bootstrap the schema
	if err := postgres.EnsureSchema(db); err != nil {
		logger.Fatal("Failed to ensure database schema", logger.ErrorField(err))
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	productRepo := postgres.NewProductRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	depositRepo := postgres.NewDepositRepository(db)
	withdrawalRepo := postgres.NewWithdrawalRepository(db)
	vipRepo := postgres.NewVipLevelRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	cacheRepo := redisrepo.NewCacheRepository(rdb)

	// Initialize auth service
	authService := auth.NewJWTAuthService(cfg.Auth)

	// Initialize use cases
	authUC := usecase.NewAuthUsecase(userRepo, authService, cfg.Platform.DefaultDailyTasks)
	userUC := usecase.NewUserUsecase(userRepo, profileRepo, vipRepo)
	vipUC := usecase.NewVipUsecase(vipRepo, userRepo, profileRepo, notificationRepo, cacheRepo)
	taskUC := usecase.NewTaskUsecase(taskRepo, userRepo, productRepo, cacheRepo, nil)
	settlementUC := usecase.NewSettlementUsecase(depositRepo, withdrawalRepo, userRepo, vipUC, cfg.Platform.WithdrawalMinimum)
	productUC := usecase.NewProductUsecase(productRepo, cacheRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	ledgerUC := usecase.NewLedgerUsecase(ledgerRepo)

	// Initialize handlers
	handlers := &apihandler.Handlers{
		Auth:         apihandler.NewAuthHandler(authUC),
		User:         apihandler.NewUserHandler(userUC),
		Task:         apihandler.NewTaskHandler(taskUC),
		Settlement:   apihandler.NewSettlementHandler(settlementUC, cfg.Platform.WalletAddress),
		Product:      apihandler.NewProductHandler(productUC),
		Vip:          apihandler.NewVipHandler(vipUC),
		Notification: apihandler.NewNotificationHandler(notificationUC),
		Ledger:       apihandler.NewLedgerHandler(ledgerUC),
	}

	// Start the daily counter reset worker
	resetWorker, err := worker.NewResetWorker(profileRepo, cfg.Platform.ResetSweepInterval)
	if err != nil {
		logger.Fatal("Failed to create reset worker", logger.ErrorField(err))
	}
	if err := resetWorker.Start(); err != nil {
		logger.Fatal("Failed to start reset worker", logger.ErrorField(err))
	}
	defer func() {
		if err := resetWorker.Stop(); err != nil {
			logger.Error("Failed to stop reset worker", logger.ErrorField(err))
		}
	}()

	// Set Gin mode
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize metrics handler
	metricsHandler := observability.NewMetricsHandler(db, cacheRepo)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(observability.Middleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Setup metrics and health endpoints
	router.GET("/metrics", metricsHandler.MetricsEndpoint())
	router.GET("/health", metricsHandler.HealthEndpoint())
	router.GET("/ready", metricsHandler.ReadinessEndpoint())
	router.GET("/live", metricsHandler.LivenessEndpoint())

	// Setup API routes
	apihandler.SetupRoutes(router, handlers, authService)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			logger.String("port", cfg.App.Port),
			logger.String("environment", cfg.App.Environment),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server exited")
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
