package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nyashahama/invoice-relay-backend/internal/api"
	"github.com/nyashahama/invoice-relay-backend/internal/config"
	"github.com/nyashahama/invoice-relay-backend/internal/email"
	"github.com/nyashahama/invoice-relay-backend/internal/invoice"
	"github.com/nyashahama/invoice-relay-backend/internal/pdf"
	"github.com/nyashahama/invoice-relay-backend/internal/webhook"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port)

	// An absent signing secret is not fatal — webhook deliveries will be
	// rejected with 401 until it is configured.
	if cfg.WebhookSigningSecret == "" {
		logger.Warn("WEBHOOK_SIGNING_SECRET is not set; webhook verification will fail")
	}

	// ── Email (Resend) ────────────────────────────────────────────────────────
	mailer := email.NewResendClient(
		cfg.ResendAPIKey,
		cfg.EmailFromAddr,
		cfg.EmailFromName,
	)

	// ── Invoice pipeline ──────────────────────────────────────────────────────
	renderer := pdf.NewEngine()
	pipeline := invoice.NewPipeline(renderer, mailer, invoice.PipelineConfig{
		FromName:     cfg.EmailFromName,
		FromAddr:     cfg.EmailFromAddr,
		ReceiptDelay: cfg.ReceiptDelay,
	}, logger)

	// ── Webhooks ──────────────────────────────────────────────────────────────
	verifier := webhook.NewVerifier(cfg.WebhookSigningSecret, cfg.SignatureTolerance)
	router := webhook.NewRouter(logger)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(
		pipeline,
		verifier,
		router,
		api.Config{Env: cfg.Env},
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // rendering + provider send can be slow
		IdleTimeout:  120 * time.Second,
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight HTTP requests up to 20 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
