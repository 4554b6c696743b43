package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campus-ease/presence/internal/api"
	"github.com/campus-ease/presence/internal/config"
	"github.com/campus-ease/presence/internal/database"
	"github.com/campus-ease/presence/internal/provider"
	"github.com/campus-ease/presence/internal/provider/insight"
	"github.com/campus-ease/presence/internal/provider/mock"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env when present, real environments set vars directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Presence API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Embedding extractor sidecar; EXTRACTOR_URL=mock runs without one
	var extractor provider.Extractor
	if cfg.ExtractorURL == "mock" {
		logger.Warn("using mock embedding extractor, recognition results are synthetic")
		extractor = mock.New(cfg.EmbeddingDim)
	} else {
		extractor = insight.New(insight.Config{
			BaseURL:    cfg.ExtractorURL,
			Timeout:    cfg.ExtractorTimeout,
			RetryCount: cfg.ExtractorRetryCount,
		}, cfg.MaxFacesPerImage)
	}

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		Config:    cfg,
		Extractor: extractor,
		DB:        pool,
	})
	router.Setup()

	// Warm the gallery so the first recognition does not pay the load
	if err := router.Gallery().Refresh(ctx); err != nil {
		logger.Warn("initial gallery load failed", slog.Any("error", err))
	} else {
		logger.Info("gallery loaded", slog.Int("identities", router.Gallery().Len()))
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}
