package api

import (
	"errors"
	"net/http"

	"github.com/nyashahama/invoice-relay-backend/internal/invoice"
)

// ─── POST /invoice ────────────────────────────────────────────────────────────

type invoiceResponse struct {
	Success      bool    `json:"success"`
	InvoiceID    string  `json:"invoiceId"`
	InvoiceTotal float64 `json:"invoice_total"`
	From         string  `json:"from"`
	To           string  `json:"to"`
}

// invoiceReceiptResponse is the variant returned when a receipt was requested.
// ScheduledEmailID serializes as null when the best-effort schedule failed —
// the field is present either way so callers can distinguish "not requested"
// from "requested but degraded".
type invoiceReceiptResponse struct {
	invoiceResponse
	ScheduledEmailID *string `json:"scheduledEmailId"`
}

// handleCreateInvoice accepts an invoice request, runs the pipeline, and maps
// its error contract onto HTTP:
//
//	*invoice.ValidationError → 400, message lists every missing field
//	*invoice.DeliveryError   → 500 with an error detail string
//	anything else            → 500 generic
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoice.Request
	if !decode(w, r, &req) {
		return
	}

	result, err := s.pipeline.Process(r.Context(), req)

	var vErr *invoice.ValidationError
	if errors.As(err, &vErr) {
		respondErr(w, http.StatusBadRequest, vErr.Error())
		return
	}

	var dErr *invoice.DeliveryError
	if errors.As(err, &dErr) {
		s.logger.Error("invoice: delivery failed",
			"stage", dErr.Stage,
			"error", dErr.Err,
			logField(r),
		)
		respond(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to send invoice",
			"details": dErr.Err.Error(),
		})
		return
	}

	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}

	base := invoiceResponse{
		Success:      true,
		InvoiceID:    result.InvoiceID,
		InvoiceTotal: result.Total,
		From:         result.From,
		To:           result.To,
	}

	if req.ScheduleReceipt {
		respond(w, http.StatusOK, invoiceReceiptResponse{
			invoiceResponse:  base,
			ScheduledEmailID: result.ScheduledEmailID,
		})
		return
	}

	respond(w, http.StatusOK, base)
}
