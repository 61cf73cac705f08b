package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sunrisemc/booking-api/config"
	"github.com/sunrisemc/booking-api/internal/booking"
	"github.com/sunrisemc/booking-api/internal/chat"
	"github.com/sunrisemc/booking-api/internal/email"
	appointmentHandler "github.com/sunrisemc/booking-api/internal/handler/appointment"
	authHandler "github.com/sunrisemc/booking-api/internal/handler/auth"
	catalogHandler "github.com/sunrisemc/booking-api/internal/handler/catalog"
	chatHandler "github.com/sunrisemc/booking-api/internal/handler/chat"
	healthHandler "github.com/sunrisemc/booking-api/internal/handler/health"
	wizardHandler "github.com/sunrisemc/booking-api/internal/handler/wizard"
	"github.com/sunrisemc/booking-api/internal/middleware"
	"github.com/sunrisemc/booking-api/internal/repository/postgres"
	"github.com/sunrisemc/booking-api/internal/router"
	appointmentService "github.com/sunrisemc/booking-api/internal/service/appointment"
	authService "github.com/sunrisemc/booking-api/internal/service/auth"
	catalogService "github.com/sunrisemc/booking-api/internal/service/catalog"
	"github.com/sunrisemc/booking-api/pkg/auth"
	"github.com/sunrisemc/booking-api/pkg/logger"
	redisbroker "github.com/sunrisemc/booking-api/pkg/messaging/redis"
	"github.com/sunrisemc/booking-api/pkg/metrics"
	"github.com/sunrisemc/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	location, err := time.LoadLocation(cfg.Clinic.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Clinic.Timezone).Msg("invalid clinic timezone")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appMetrics := metrics.NewMetrics("booking_api")

	// Repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	emailSvc := email.NewService(cfg.Email, appLogger, appMetrics)
	authSvc := authService.NewService(userRepo, tokenSvc, appLogger)
	catalogSvc := catalogService.NewService(categoryRepo, serviceRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, serviceRepo, outboxRepo, emailSvc, location, appLogger, appMetrics)

	phonePolicy := booking.NewPhonePolicy(cfg.Clinic.PhoneRegion)
	bookingWizard := booking.NewWizard(
		appointmentSvc, authSvc, catalogSvc, phonePolicy, location, cfg.Chat.SessionTTL, appLogger)

	classifier := chat.NewZeroShotClassifier(
		cfg.Chat.ClassifierURL, cfg.Chat.ClassifierToken, cfg.Chat.ClassifierTimeout, appLogger)
	detector := chat.NewDetector(classifier, cfg.Chat.ConfidenceThreshold)
	chatEngine := chat.NewEngine(
		appointmentSvc, catalogSvc, authSvc, detector, phonePolicy,
		location, cfg.Chat.SessionTTL, appLogger, appMetrics)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		catalogHandler.NewHandler(catalogSvc),
		chatHandler.NewHandler(chatEngine),
		wizardHandler.NewHandler(bookingWizard),
		healthHandler.NewHandler(db),
		router.Config{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RequestsPerSecond,
				Burst: cfg.RateLimit.Burst,
			},
			CORS:          corsConfig(cfg),
			MetricsPrefix: "booking_api",
			MetricsPath:   cfg.Monitoring.MetricsPath,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Outbox processor publishes committed appointment events to Redis.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	broker, err := redisbroker.NewBroker(cfg.Redis.ToBrokerConfig(), appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxProcessor := worker.NewOutboxProcessor(
		outboxRepo, broker, cfg.Outbox.ToWorkerConfig(), appLogger, appMetrics)
	go outboxProcessor.Start(workerCtx)

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.Security.AllowedHeaders
	}
	return corsCfg
}
