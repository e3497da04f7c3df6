package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/vocadrill/practice-service/internal/cache"
	"github.com/vocadrill/practice-service/internal/config"
	"github.com/vocadrill/practice-service/internal/events"
	"github.com/vocadrill/practice-service/internal/generation"
	"github.com/vocadrill/practice-service/internal/handlers"
	"github.com/vocadrill/practice-service/internal/repositories/postgres"
	"github.com/vocadrill/practice-service/internal/services"
	"github.com/vocadrill/practice-service/internal/utils"
	"github.com/vocadrill/practice-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	ctx := context.Background()
	generator, err := generation.NewGeminiGenerator(ctx, generation.GeminiConfig{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize passage generator", "error", err)
		os.Exit(1)
	}

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.PracticeEventsTopic,
			Logger:       utils.ToSlogLogger(logger),
		})
		if err != nil {
			logger.Error("Failed to create event publisher", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
	} else {
		logger.Warn("No Kafka brokers configured, practice events will be dropped")
		publisher = events.NewMockEventPublisher()
	}
	defer publisher.Close()

	if cfg.CasdoorEndpoint != "" {
		casdoorsdk.InitConfig(
			cfg.CasdoorEndpoint,
			cfg.CasdoorClientID,
			cfg.CasdoorClientSecret,
			cfg.CasdoorCertificate,
			cfg.CasdoorOrganization,
			cfg.CasdoorApplication,
		)
	}

	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()
	cacheService := cache.NewRedisCache(redisClient, logger)
	exerciseTTL := time.Duration(cfg.ExerciseTTLMinutes) * time.Minute

	serviceManager := services.NewServiceManager(repo, cacheService, generator, publisher, validator, logger, exerciseTTL)
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	handlerManager.SetupRoutes(router, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Practice service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
