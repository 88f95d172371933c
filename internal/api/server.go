// Package api implements the HTTP layer for the invoice relay. Handlers are
// methods on *Server. Each handler file is responsible for one resource group
// and only imports the dependencies it actually uses.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nyashahama/invoice-relay-backend/internal/invoice"
	"github.com/nyashahama/invoice-relay-backend/internal/webhook"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development".
	Env string
}

// Processor is the narrow interface the invoice handler needs. The concrete
// implementation is *invoice.Pipeline; tests inject a stub.
type Processor interface {
	Process(ctx context.Context, req invoice.Request) (invoice.Result, error)
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// pipeline runs the invoice flow: validate → render → send → receipt.
	pipeline Processor

	// verifier authenticates inbound webhook deliveries.
	verifier webhook.Verifier

	// router classifies verified events and records them.
	router *webhook.Router

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	pipeline Processor,
	verifier webhook.Verifier,
	router *webhook.Router,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		pipeline: pipeline,
		verifier: verifier,
		router:   router,
		cfg:      cfg,
		logger:   logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── Invoicing ─────────────────────────────────────────────────────────────
	r.Post("/invoice", s.handleCreateInvoice)

	// ── Resend webhook — no auth (signature verification inside handler) ──────
	r.Post("/webhooks/resend", s.handleResendWebhook)

	return r
}
