package invoice_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nyashahama/invoice-relay-backend/internal/email"
	"github.com/nyashahama/invoice-relay-backend/internal/invoice"
)

// ─── STUBS ────────────────────────────────────────────────────────────────────

// stubRenderer satisfies invoice.Renderer. Fields may be set per-test.
type stubRenderer struct {
	doc      invoice.Document
	err      error
	rendered []invoice.Invoice
}

func (r *stubRenderer) Render(_ context.Context, inv invoice.Invoice) (invoice.Document, error) {
	r.rendered = append(r.rendered, inv)
	if r.err != nil {
		return invoice.Document{}, r.err
	}
	doc := r.doc
	if doc.Filename == "" {
		doc.Filename = invoice.Filename(inv.ID)
	}
	return doc, nil
}

// stubMailer captures sent emails.
type stubMailer struct {
	invoices    []email.InvoiceParams
	receipts    []email.ReceiptParams
	sendID      string
	scheduledID string
	sendErr     error
	scheduleErr error
}

func (m *stubMailer) SendInvoice(_ context.Context, p email.InvoiceParams) (string, error) {
	m.invoices = append(m.invoices, p)
	if m.sendErr != nil {
		return "", m.sendErr
	}
	return m.sendID, nil
}

func (m *stubMailer) ScheduleReceipt(_ context.Context, p email.ReceiptParams) (string, error) {
	m.receipts = append(m.receipts, p)
	if m.scheduleErr != nil {
		return "", m.scheduleErr
	}
	return m.scheduledID, nil
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestPipeline(r *stubRenderer, m *stubMailer) *invoice.Pipeline {
	return invoice.NewPipeline(r, m, invoice.PipelineConfig{
		FromName: "Invoice Relay",
		FromAddr: "billing@invoicerelay.com",
		NewID:    func() string { return "INV-20260831-0042" },
		Now:      func() time.Time { return testNow },
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validRequest() invoice.Request {
	return invoice.Request{
		LineItems: []invoice.LineItem{
			{Description: "Design", Quantity: 10, Rate: 50},
			{Description: "Dev", Quantity: 5, Rate: 80},
		},
		ClientName:  "Acme Co",
		ClientEmail: "billing@acme.test",
	}
}

// ─── VALIDATION ──────────────────────────────────────────────────────────────

func TestProcess_MissingEverythingListsAllFields(t *testing.T) {
	r := &stubRenderer{}
	p := newTestPipeline(r, &stubMailer{})

	_, err := p.Process(context.Background(), invoice.Request{})

	var vErr *invoice.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := "Missing required fields: lineItems, clientName, clientEmail"
	if vErr.Error() != want {
		t.Errorf("got %q, want %q", vErr.Error(), want)
	}
	if len(r.rendered) != 0 {
		t.Error("renderer must not run on invalid input")
	}
}

func TestProcess_MissingOnlyClientEmail(t *testing.T) {
	req := validRequest()
	req.ClientEmail = ""
	p := newTestPipeline(&stubRenderer{}, &stubMailer{})

	_, err := p.Process(context.Background(), req)

	var vErr *invoice.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 1 || vErr.Missing[0] != "clientEmail" {
		t.Errorf("expected only clientEmail missing, got %v", vErr.Missing)
	}
}

// ─── HAPPY PATH ──────────────────────────────────────────────────────────────

func TestProcess_RendersAndSends(t *testing.T) {
	r := &stubRenderer{doc: invoice.Document{Bytes: []byte("%PDF-fake")}}
	m := &stubMailer{sendID: "em_1"}
	p := newTestPipeline(r, m)

	result, err := p.Process(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.InvoiceID != "INV-20260831-0042" {
		t.Errorf("invoice id: got %q", result.InvoiceID)
	}
	if result.Total != 900 {
		t.Errorf("total: got %v, want 900", result.Total)
	}
	if result.From != "Invoice Relay <billing@invoicerelay.com>" {
		t.Errorf("from: got %q", result.From)
	}
	if result.To != "billing@acme.test" {
		t.Errorf("to: got %q", result.To)
	}
	if result.ScheduledEmailID != nil {
		t.Error("no receipt requested — ScheduledEmailID should be nil")
	}

	if len(r.rendered) != 1 {
		t.Fatalf("expected one render, got %d", len(r.rendered))
	}
	if r.rendered[0].Total != 900 {
		t.Errorf("rendered invoice total: got %v", r.rendered[0].Total)
	}

	if len(m.invoices) != 1 {
		t.Fatalf("expected one send, got %d", len(m.invoices))
	}
	sent := m.invoices[0]
	if string(sent.PDF) != "%PDF-fake" {
		t.Error("rendered bytes were not handed to the mailer")
	}
	if sent.Filename != "invoice-INV-20260831-0042.pdf" {
		t.Errorf("attachment filename: got %q", sent.Filename)
	}
	if len(m.receipts) != 0 {
		t.Error("no receipt should be scheduled")
	}
}

// ─── FAILURE PATHS ───────────────────────────────────────────────────────────

func TestProcess_RenderFailureAbortsBeforeSend(t *testing.T) {
	r := &stubRenderer{err: errors.New("stream fault")}
	m := &stubMailer{}
	p := newTestPipeline(r, m)

	_, err := p.Process(context.Background(), validRequest())

	var dErr *invoice.DeliveryError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if dErr.Stage != "render" {
		t.Errorf("stage: got %q, want render", dErr.Stage)
	}
	if len(m.invoices) != 0 {
		t.Error("a failed render must never reach the mailer")
	}
}

func TestProcess_SendFailureIsDeliveryError(t *testing.T) {
	m := &stubMailer{sendErr: errors.New("provider down")}
	p := newTestPipeline(&stubRenderer{}, m)

	req := validRequest()
	req.ScheduleReceipt = true
	_, err := p.Process(context.Background(), req)

	var dErr *invoice.DeliveryError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if dErr.Stage != "send" {
		t.Errorf("stage: got %q, want send", dErr.Stage)
	}
	if len(m.receipts) != 0 {
		t.Error("receipt must not be scheduled when the primary send failed")
	}
}

// ─── SCHEDULED RECEIPT ───────────────────────────────────────────────────────

func TestProcess_ScheduleReceipt_DefaultDelayIsOneMinute(t *testing.T) {
	m := &stubMailer{sendID: "em_1", scheduledID: "em_2"}
	p := newTestPipeline(&stubRenderer{}, m)

	req := validRequest()
	req.ScheduleReceipt = true
	result, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.receipts) != 1 {
		t.Fatalf("expected one scheduled receipt, got %d", len(m.receipts))
	}
	if got, want := m.receipts[0].SendAt, testNow.Add(time.Minute); !got.Equal(want) {
		t.Errorf("send at: got %v, want %v", got, want)
	}
	if result.ScheduledEmailID == nil || *result.ScheduledEmailID != "em_2" {
		t.Errorf("scheduled email id: got %v", result.ScheduledEmailID)
	}
}

func TestProcess_ScheduleReceipt_ExplicitDelayMinutes(t *testing.T) {
	m := &stubMailer{sendID: "em_1", scheduledID: "em_2"}
	p := newTestPipeline(&stubRenderer{}, m)

	req := validRequest()
	req.ScheduleReceipt = true
	req.DelayMinutes = json.RawMessage(`15`)
	if _, err := p.Process(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := m.receipts[0].SendAt, testNow.Add(15*time.Minute); !got.Equal(want) {
		t.Errorf("send at: got %v, want %v", got, want)
	}
}

func TestProcess_ScheduleReceipt_NonNumericDelayFallsBack(t *testing.T) {
	m := &stubMailer{sendID: "em_1", scheduledID: "em_2"}
	p := newTestPipeline(&stubRenderer{}, m)

	req := validRequest()
	req.ScheduleReceipt = true
	req.DelayMinutes = json.RawMessage(`"soon"`)
	if _, err := p.Process(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := m.receipts[0].SendAt, testNow.Add(time.Minute); !got.Equal(want) {
		t.Errorf("send at: got %v, want %v", got, want)
	}
}

func TestProcess_ScheduleReceiptFailureDegrades(t *testing.T) {
	m := &stubMailer{sendID: "em_1", scheduleErr: errors.New("scheduling unavailable")}
	p := newTestPipeline(&stubRenderer{}, m)

	req := validRequest()
	req.ScheduleReceipt = true
	result, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("receipt failure must not fail the pipeline: %v", err)
	}
	if result.ScheduledEmailID != nil {
		t.Error("degraded receipt should leave ScheduledEmailID nil")
	}
	if result.InvoiceID == "" {
		t.Error("primary result must survive a receipt failure")
	}
}
