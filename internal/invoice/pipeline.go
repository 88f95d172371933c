package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nyashahama/invoice-relay-backend/internal/email"
)

// PipelineConfig holds the process-wide values the pipeline needs. Zero-valued
// hooks and durations get sensible defaults from NewPipeline.
type PipelineConfig struct {
	FromName string
	FromAddr string

	// ReceiptDelay is the scheduling offset used when the request omits
	// delay_minutes. Default: 1 minute.
	ReceiptDelay time.Duration

	// NewID generates invoice ids. Default: NewID. Tests override it to get
	// deterministic ids.
	NewID func() string

	// Now is the pipeline clock. Default: time.Now.
	Now func() time.Time
}

// Pipeline orchestrates id generation → rendering → email send → optional
// scheduled receipt for one invoice request. It is safe for concurrent use:
// all its state is read-only after construction.
type Pipeline struct {
	renderer Renderer
	mailer   email.Sender
	cfg      PipelineConfig
	logger   *slog.Logger
}

// NewPipeline constructs a Pipeline with defaults filled in.
func NewPipeline(renderer Renderer, mailer email.Sender, cfg PipelineConfig, logger *slog.Logger) *Pipeline {
	if cfg.ReceiptDelay <= 0 {
		cfg.ReceiptDelay = time.Minute
	}
	if cfg.NewID == nil {
		cfg.NewID = NewID
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{
		renderer: renderer,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}
}

// Process validates the request, renders the invoice PDF, and emails it to
// the client. When the request asks for a receipt, the receipt email is
// scheduled best-effort after the primary send: its failure degrades the
// result (nil ScheduledEmailID) but never fails the invoice.
//
// Error contract: *ValidationError for malformed input, *DeliveryError for a
// rendering or primary-send failure. A partial document is never sent — any
// render failure aborts before the send.
func (p *Pipeline) Process(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	total := Total(req.LineItems)
	id := p.cfg.NewID()

	inv := Invoice{
		ID:          id,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		LineItems:   req.LineItems,
		Total:       total,
	}

	doc, err := p.renderer.Render(ctx, inv)
	if err != nil {
		return Result{}, &DeliveryError{Stage: "render", Err: err}
	}

	emailID, err := p.mailer.SendInvoice(ctx, email.InvoiceParams{
		To:         req.ClientEmail,
		ClientName: req.ClientName,
		InvoiceID:  id,
		Total:      total,
		Filename:   doc.Filename,
		PDF:        doc.Bytes,
	})
	if err != nil {
		return Result{}, &DeliveryError{Stage: "send", Err: err}
	}

	p.logger.Info("invoice: sent",
		"invoice_id", id,
		"email_id", emailID,
		"to", req.ClientEmail,
		"total", total,
	)

	result := Result{
		InvoiceID: id,
		Total:     total,
		From:      fmt.Sprintf("%s <%s>", p.cfg.FromName, p.cfg.FromAddr),
		To:        req.ClientEmail,
	}

	if req.ScheduleReceipt {
		sendAt := p.cfg.Now().Add(p.delay(req.DelayMinutes))
		scheduledID, err := p.mailer.ScheduleReceipt(ctx, email.ReceiptParams{
			To:         req.ClientEmail,
			ClientName: req.ClientName,
			InvoiceID:  id,
			Total:      total,
			SendAt:     sendAt,
		})
		if err != nil {
			// Best-effort: the invoice already went out.
			p.logger.Warn("invoice: receipt scheduling failed",
				"invoice_id", id,
				"error", err,
			)
		} else {
			result.ScheduledEmailID = &scheduledID
			p.logger.Info("invoice: receipt scheduled",
				"invoice_id", id,
				"scheduled_email_id", scheduledID,
				"send_at", sendAt,
			)
		}
	}

	return result, nil
}

func validate(req Request) error {
	var missing []string
	if len(req.LineItems) == 0 {
		missing = append(missing, "lineItems")
	}
	if req.ClientName == "" {
		missing = append(missing, "clientName")
	}
	if req.ClientEmail == "" {
		missing = append(missing, "clientEmail")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// delay parses the raw delay_minutes value. Anything that is not a positive
// JSON number (absent, null, zero, a string, garbage) falls back to the
// configured default rather than failing the request.
func (p *Pipeline) delay(raw json.RawMessage) time.Duration {
	if len(raw) == 0 {
		return p.cfg.ReceiptDelay
	}
	var minutes float64
	if err := json.Unmarshal(raw, &minutes); err != nil || minutes <= 0 {
		return p.cfg.ReceiptDelay
	}
	return time.Duration(minutes * float64(time.Minute))
}
