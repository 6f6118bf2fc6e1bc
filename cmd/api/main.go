package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/T14g/react-tdd/internal/backend"
	"github.com/T14g/react-tdd/internal/cache"
	"github.com/T14g/react-tdd/internal/config"
	"github.com/T14g/react-tdd/internal/handlers"
	"github.com/T14g/react-tdd/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if cfg.Env == "development" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cacheStore cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		redisCache, err := cache.DialRedis(cfg.RedisURL, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("redis connected")
		cacheStore = redisCache
	} else {
		logger.Info("redis disabled, using in-memory cache")
	}

	server := &handlers.Server{
		Cfg:   cfg,
		Val:   validation.New(),
		Log:   logger,
		Cache: cacheStore,
	}
	if client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout()); client != nil {
		server.Backend = client
		logger.Info("backend configured", slog.String("url", cfg.BackendURL))
	} else {
		logger.Warn("backend disabled, availability and saving will fail")
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started",
			slog.String("addr", cfg.ServerAddr),
			slog.String("timezone", cfg.Timezone.String()),
			slog.Int("opens_at", cfg.SalonOpensAt),
			slog.Int("closes_at", cfg.SalonClosesAt),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
