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

	"github.com/nulzo/summary-gateway/internal/analytics"
	"github.com/nulzo/summary-gateway/internal/cli"
	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/gateway"
	"github.com/nulzo/summary-gateway/internal/platform/logger"
	"github.com/nulzo/summary-gateway/internal/platform/otel"
	"github.com/nulzo/summary-gateway/internal/server"
	"github.com/nulzo/summary-gateway/internal/store/cache"
	"github.com/nulzo/summary-gateway/internal/store/sqlite"
	"github.com/nulzo/summary-gateway/internal/version"
	"go.uber.org/zap"

	// Import providers to trigger init() registration
	_ "github.com/nulzo/summary-gateway/internal/llm/anthropic"
	_ "github.com/nulzo/summary-gateway/internal/llm/gemini"
	_ "github.com/nulzo/summary-gateway/internal/llm/groq"
	_ "github.com/nulzo/summary-gateway/internal/llm/openai"
	_ "github.com/nulzo/summary-gateway/internal/llm/openrouter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(logger.NewConfig(cfg.Log.Level, cfg.Log.Format))
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer(cfg.Tracing, version.Version, cfg.Server.Env, log, os.Stderr)
		if err != nil {
			log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	if cfg.UpdateCheck.URL != "" {
		go checkForUpdates(ctx, cfg.UpdateCheck.URL, log)
	}

	settings := gateway.NewSettings(cfg)
	adapters := gateway.BootstrapProviders(settings, &http.Client{}, log)

	ingestor := analytics.NewNopIngestor()
	var analyticsService analytics.Service
	if cfg.Database.Enabled {
		repo, err := sqlite.NewSQLiteStorage(cfg.Database.Path)
		if err != nil {
			log.Fatal("Failed to open attempt log database", zap.String("path", cfg.Database.Path), zap.Error(err))
		}
		defer repo.Close()

		ingestor = analytics.NewIngestor(log, repo)
		analyticsService = analytics.NewService(repo)
	}
	// Stop, not the signal context, ends the ingestor so requests that are
	// still draining during shutdown get persisted
	ingestor.Start(context.Background())
	defer ingestor.Stop()

	var summaryCache cache.CacheService
	if cfg.Redis.Enabled {
		c, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unreachable, using in-process summary cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			summaryCache = cache.NewMemoryCache()
		} else {
			summaryCache = c
			defer c.Close()
		}
	}

	service := gateway.NewService(log, settings, adapters, ingestor, summaryCache)
	srv := server.New(cfg, log, service, analyticsService, version.Version)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	order := make([]string, len(settings.Order))
	for i, name := range settings.Order {
		order[i] = string(name)
	}
	log.Info(fmt.Sprintf("%s %s %s",
		cli.Arrow(),
		cli.Gradient("summary-gateway "+version.Version, cli.BrandBlue, cli.BrandPurple, 0.5),
		cli.Stylize("listening on :"+cfg.Server.Port, cli.Black),
	), zap.Strings("order", order))

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func checkForUpdates(ctx context.Context, url string, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	latest, outdated, err := version.Check(ctx, &http.Client{}, url, version.Version)
	if err != nil {
		log.Debug("Update check failed", zap.Error(err))
		return
	}
	if outdated {
		log.Warn(fmt.Sprintf("%s You are running an outdated version (%s), the latest is %s",
			cli.WarningSign(), version.Version, latest))
	}
}
