package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"carpool/internal/app"
	"carpool/internal/config"
	"carpool/internal/handler"
	internalRedis "carpool/internal/redis"
	"carpool/internal/repository/postgres"
	"carpool/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logger := newLogger(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.WithError(err).Warn("failed to initialize New Relic")
		} else {
			logger.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, logger)

	// Start server in goroutine.
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("Server exited")
}

// newLogger builds the process-wide structured logger.
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *logrus.Logger) *http.Server {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	carRepo := postgres.NewCarRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// Initialize services.
	notificationService := service.NewNotificationService(logger)
	processor := service.NewMockCardProcessor()
	paymentService := service.NewPaymentService(txManager, paymentRepo, processor, notificationService, logger)
	bookingService := service.NewBookingService(txManager, bookingRepo, rideRepo, paymentService, notificationService, logger)
	cancelService := service.NewCancellationService(txManager, lockStore, paymentService, notificationService, logger)
	rideService := service.NewRideService(rideRepo, bookingRepo, reviewRepo, carRepo, cacheStore, logger)
	carService := service.NewCarService(carRepo)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, rideRepo, service.NewMockModerator(), logger)
	userService := service.NewUserService(userRepo, cacheStore, logger)

	// Initialize handlers.
	rideHandler := handler.NewRideHandler(rideService)
	bookingHandler := handler.NewBookingHandler(bookingService, cancelService, rideService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	carHandler := handler.NewCarHandler(carService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	userHandler := handler.NewUserHandler(userService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler:    rideHandler,
		BookingHandler: bookingHandler,
		PaymentHandler: paymentHandler,
		CarHandler:     carHandler,
		ReviewHandler:  reviewHandler,
		UserHandler:    userHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
		JWTSecret:      cfg.Auth.JWTSecret,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
