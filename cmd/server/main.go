package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/gradebook-service/internal/cache"
	"github.com/SAP-F-2025/gradebook-service/internal/config"
	"github.com/SAP-F-2025/gradebook-service/internal/handlers"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
	"github.com/SAP-F-2025/gradebook-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		return err
	}

	// Reports are still served without Redis, only slower.
	var reportCache cache.CacheService
	if redisClient, err := pkg.NewRedisClient(ctx, cfg); err != nil {
		logger.Warn("Redis unavailable, class reports will not be cached", "error", err)
	} else {
		defer redisClient.Close()
		reportCache = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	v := validator.New()
	serviceLogger := services.NewServiceLogger(logger, services.LogConfig{
		Service:     "gradebook-service",
		Component:   "services",
		EnableDebug: !cfg.IsProduction(),
	})
	exporter := services.NewExportService(logger)
	serviceManager := services.NewServiceManager(
		services.NewGradebookService(services.GradebookServiceDeps{
			Repo:      postgres.NewGradebookPostgreSQL(db),
			Cache:     reportCache,
			Publisher: publisher,
			Exporter:  exporter,
			Validator: v,
			Logger:    serviceLogger,
			CacheTTL:  cfg.CacheTTL,
		}),
		services.NewEvaluationService(v, serviceLogger),
		exporter,
	)

	var tokenParser handlers.TokenParser
	if cfg.Auth.Enabled {
		tokenParser = handlers.NewCasdoorTokenParser(cfg.Auth)
	} else {
		logger.Warn("Authentication disabled, trusting the X-User-ID header")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handlers.NewHandlerManager(serviceManager, tokenParser, utils.NewSlogLogger(logger)).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
