package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelbook/service-booking/internal/application"
	"github.com/hotelbook/service-booking/internal/config"
	bookingDomain "github.com/hotelbook/service-booking/internal/domain/booking"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	bookingEvents "github.com/hotelbook/service-booking/internal/events"
	"github.com/hotelbook/service-booking/internal/handler"
	"github.com/hotelbook/service-booking/internal/metrics"
	"github.com/hotelbook/service-booking/internal/repository"
	"github.com/hotelbook/service-booking/pkg/auth"
	"github.com/hotelbook/service-booking/pkg/database"
	"github.com/hotelbook/service-booking/pkg/health"
	"github.com/hotelbook/service-booking/pkg/logger"
	"github.com/hotelbook/service-booking/pkg/middleware"
	"github.com/hotelbook/service-booking/pkg/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "service-booking"

var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("hotel_timezone", cfg.HotelTimezone.String()),
		zap.Bool("strict_transitions", cfg.StrictTransitions),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing
	shutdownTracer, err := obs.InitTracer(ctx, serviceName, version, cfg.AppEnv,
		cfg.TracingConfig.Endpoint, cfg.TracingConfig.Enabled, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.RoomModel{}, &repository.BookingModel{}, &repository.FeedbackModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Event publisher
	publisher, err := bookingEvents.NewPublisher(cfg.EventsBroker, cfg.KafkaConfig, cfg.RabbitConfig, log)
	if err != nil {
		log.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer func() { _ = publisher.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	var rooms roomDomain.RoomDirectory = repository.NewGormRoomRepository(db)

	healthHandler := health.NewHandler(db, serviceName)

	// Room cache and the consumer that keeps it fresh
	if cfg.RedisConfig.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Address,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
			PoolSize: cfg.RedisConfig.PoolSize,
		})
		defer func() { _ = redisClient.Close() }()

		cached := repository.NewCachedRoomDirectory(rooms, redisClient, cfg.RoomCacheTTL, log)
		rooms = cached
		healthHandler.AddChecker("redis", cached.Ping)

		if len(cfg.KafkaConfig.Brokers) > 0 {
			groupID := cfg.KafkaConfig.GroupPrefix + "booking-service"
			roomConsumer := bookingEvents.NewRoomEventConsumer(cfg.KafkaConfig.Brokers, groupID, cached, m, log)
			defer func() { _ = roomConsumer.Close() }()

			go func() {
				log.Info("starting room event consumer")
				if err := roomConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("room event consumer error", zap.Error(err))
				}
			}()
		}
	}

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		rooms,
		bookingDomain.NewTieredPricingStrategy(),
		publisher,
		m,
		log,
		application.WithStrictTransitions(cfg.StrictTransitions),
		application.WithLocation(cfg.HotelTimezone),
	)
	roomService := application.NewRoomService(rooms, log)
	feedbackService := application.NewFeedbackService(repository.NewGormFeedbackRepository(db), bookingRepo, rooms, log)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(m.Middleware())
	router.Use(middleware.RateLimitMiddleware(
		middleware.NewRateLimiter(cfg.RateLimitConfig.RPS, cfg.RateLimitConfig.Burst), log))

	// Probes and metrics
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register routes
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewAdminBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewRoomHandler(roomService, bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewFeedbackHandler(feedbackService).RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Stop the consumer
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	// Let queued events reach the broker before the publisher closes
	bookingService.Wait()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
