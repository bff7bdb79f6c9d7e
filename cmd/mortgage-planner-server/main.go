package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeyev/mortgage-planner/internal/feeds"
	"github.com/avdeyev/mortgage-planner/internal/feeds/cbr"
	"github.com/avdeyev/mortgage-planner/internal/feeds/market"
	"github.com/avdeyev/mortgage-planner/internal/server"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

func buildLogger(level, format string) (*zap.Logger, error) {
	zapLevel := zapcore.InfoLevel
	switch level {
	case "", "info":
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "", "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	return zapConfig.Build()
}

// buildCache returns a Redis-backed feed cache when an address is configured
// and reachable, and a no-op cache otherwise.
func buildCache(logger *zap.Logger, cfg *server.Config) feeds.Cache {
	if cfg.Feeds.Redis.Address == "" {
		return feeds.NoopCache{}
	}

	cache := feeds.NewRedisCache(logger, cfg.Feeds.Redis.Address, cfg.Feeds.Redis.Password,
		cfg.Feeds.Redis.DB, time.Duration(cfg.Feeds.Redis.TTLSeconds)*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, feed caching disabled",
			zap.String("op", "main"),
			zap.String("address", cfg.Feeds.Redis.Address),
			zap.Error(err),
		)
		_ = cache.Close()
		return feeds.NoopCache{}
	}

	logger.Info("feed caching enabled",
		zap.String("op", "main"),
		zap.String("address", cfg.Feeds.Redis.Address),
	)
	return cache
}

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	addressFlag := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}
	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logger, err := buildLogger(level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	cache := buildCache(logger, cfg)
	timeout := time.Duration(cfg.Feeds.TimeoutSeconds) * time.Second
	marketFeed := market.NewClient(logger, cfg.Feeds.MarketURL, timeout, cache)
	rateFeed := cbr.NewClient(logger, cfg.Feeds.RateURL, timeout, cache)

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, version, marketFeed, rateFeed),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		sig := <-sigs

		logger.Info("shutting down",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		close(shutdownComplete)
	}()

	logger.Info("server listening",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	<-shutdownComplete
}
