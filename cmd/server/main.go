package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"github.com/hindih/gett-gpt-proxy/internal/app"
	"github.com/hindih/gett-gpt-proxy/internal/config"
	"github.com/hindih/gett-gpt-proxy/internal/handler"
	internalRedis "github.com/hindih/gett-gpt-proxy/internal/redis"
	"github.com/hindih/gett-gpt-proxy/internal/service"
	"github.com/hindih/gett-gpt-proxy/internal/upstream"
)

func main() {
	// Load configuration.
	godotenv.Load()
	cfg := config.Load()

	logger, err := app.NewLogger(cfg.Server.IsProduction())
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Initialize the idempotency store when Redis is enabled.
	var idempotencyStore internalRedis.IdempotencyStoreInterface
	if cfg.Redis.Enabled {
		redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		idempotencyStore = internalRedis.NewIdempotencyStore(redisClient)
		logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Wire dependencies.
	server := wireServer(cfg, idempotencyStore, nrApp, logger)

	// Start server in goroutine.
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
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
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	cfg *config.Config,
	idempotencyStore internalRedis.IdempotencyStoreInterface,
	nrApp *newrelic.Application,
	logger *zap.Logger,
) *http.Server {
	// Initialize outbound clients.
	tokenClient := upstream.NewTokenClient(cfg.Auth, cfg.Provider.Timeout, logger)
	providerClient := upstream.NewProviderClient(cfg.Provider, logger)

	// Initialize services.
	gatewayService := service.NewGatewayService(tokenClient, providerClient, cfg.Provider, logger)

	// Initialize handlers.
	gatewayHandler := handler.NewGatewayHandler(gatewayService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		GatewayHandler:   gatewayHandler,
		IdempotencyStore: idempotencyStore,
		NewRelicApp:      nrApp,
		Logger:           logger,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
