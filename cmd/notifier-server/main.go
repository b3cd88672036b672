package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eweretech/article-notifier/internal/api"
	"github.com/eweretech/article-notifier/internal/config"
	"github.com/eweretech/article-notifier/internal/dispatch"
	"github.com/eweretech/article-notifier/internal/logger"
	"github.com/eweretech/article-notifier/internal/queue"
	"github.com/eweretech/article-notifier/internal/render"
	"github.com/eweretech/article-notifier/internal/transport"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewFromConfig(logger.Config{
		Level:     cfg.Logging.Level,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	log.Info().Msg("starting notifier server")

	ctx := context.Background()

	// Connect to Redis
	client, err := queue.NewClient(cfg.Queue.RedisURL, cfg.Queue.RedisAddr, cfg.Queue.RedisPassword, cfg.Queue.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create redis client")
	}
	defer client.Close()

	store := queue.NewRedisList(client, cfg.Queue.Key)
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	log.Info().Str("key", cfg.Queue.Key).Msg("redis connection established")

	// Initialize email transport
	tr, err := transport.New(ctx, cfg.Transport)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email transport")
	}
	log.Info().Str("transport", tr.Name()).Msg("email transport ready")

	renderer := render.New(cfg.Newsletter.WebsiteURL, cfg.Newsletter.UnsubscribeURL)

	dispatcher := dispatch.New(store, tr, renderer, nil, dispatch.Config{
		BatchSize:   cfg.Dispatch.BatchSize,
		PacingDelay: cfg.Dispatch.PacingDelay,
	}, log)

	router := api.NewRouter(dispatcher, store, log)

	// Configure HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("notifier server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down server")

	// Graceful shutdown with 30-second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
