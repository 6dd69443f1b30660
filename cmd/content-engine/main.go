package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/content-engine/internal/api"
	"github.com/terra-clan/content-engine/internal/cache"
	"github.com/terra-clan/content-engine/internal/config"
	"github.com/terra-clan/content-engine/internal/engine"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting content-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"content_dir", cfg.Content.Dir,
		"strict", cfg.Content.Strict,
	)

	// Load and wire content
	eng, _, err := engine.Load(cfg.Content.Dir, cfg.Content.Strict)
	if err != nil {
		slog.Error("failed to load content", "dir", cfg.Content.Dir, "error", err)
		os.Exit(1)
	}

	if err := eng.CheckCoverage(); err != nil {
		if cfg.Content.Strict {
			slog.Error("coverage baseline check failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("coverage baseline check failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional response cache
	var respCache cache.Cache
	var redisCache *cache.RedisCache
	if cfg.Cache.Enabled {
		initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
		redisCache, err = cache.NewRedisCache(initCtx, cache.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Cache.Prefix,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			slog.Warn("response cache unavailable, serving uncached", "error", err)
		} else {
			if _, err := redisCache.Purge(initCtx); err != nil {
				slog.Warn("failed to purge response cache", "error", err)
			}
			monitor := cache.NewMonitor(redisCache, cfg.Cache.HealthInterval)
			monitor.Start(ctx)
			respCache = monitor
		}
		initCancel()
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, eng, respCache)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	slog.Info("content-engine stopped")
}
