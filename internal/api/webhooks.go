package api

import (
	"io"
	"net/http"

	"github.com/nyashahama/invoice-relay-backend/internal/webhook"
)

// ─── POST /webhooks/resend ────────────────────────────────────────────────────

type webhookResponse struct {
	Received bool   `json:"received"`
	Type     string `json:"type"`
}

// handleResendWebhook is the entry point for all Resend delivery-status
// webhooks.
//
// The raw body is read before anything else: the signature covers the exact
// bytes the provider sent, so no decoding may happen first. Every
// verification failure — unconfigured secret, missing headers, bad
// signature, expired timestamp, malformed payload — maps to the same 401
// body; the distinguishing detail is logged server-side only.
//
// A verified event is always acked with 200, whether or not its type is
// recognized. The provider retries on non-2xx, and an unknown type is not a
// delivery failure.
func (s *Server) handleResendWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 65536) // 64 KB — generous for any event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(payload) == 0 {
		respondErr(w, http.StatusBadRequest, "missing request body")
		return
	}

	event, err := s.verifier.Verify(payload, webhook.Headers{
		ID:        r.Header.Get("svix-id"),
		Timestamp: r.Header.Get("svix-timestamp"),
		Signature: r.Header.Get("svix-signature"),
	})
	if err != nil {
		s.logger.Warn("webhook: verification failed", "error", err, logField(r))
		respondErr(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	s.router.Route(event)

	respond(w, http.StatusOK, webhookResponse{
		Received: true,
		Type:     event.RawType,
	})
}
