package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/mcoot/penalties-go/internal/api"
	"github.com/mcoot/penalties-go/internal/factory"
	redisstorage "github.com/mcoot/penalties-go/internal/storage/redis"
	"github.com/mcoot/penalties-go/internal/web"
)

// sessionSweepInterval is how often expired referee sessions are dropped
const sessionSweepInterval = 10 * time.Minute

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		ShootoutController: app.ShootoutController,
		PricingService:     app.PricingService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:             logger,
		ShootoutController: app.ShootoutController,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var background conc.WaitGroup
	background.Go(func() {
		sweepSessions(ctx, app, logger)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", storageName(cfg.StorageType)),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	stop()
	background.Wait()
	logger.Info("server stopped")
}

func sweepSessions(ctx context.Context, app *factory.App, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.AuthService.CleanExpiredSessions()
			logger.Debug("expired sessions swept")
		}
	}
}

func storageName(storageType string) string {
	if storageType == "" {
		return factory.StorageTypeMemory
	}
	return storageType
}
