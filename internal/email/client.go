// Package email defines the interface for transactional email delivery and
// provides a Resend-backed implementation.
package email

import (
	"context"
	"time"
)

// InvoiceParams holds the data needed to send the invoice email with the
// rendered PDF attached.
type InvoiceParams struct {
	To         string // recipient email address
	ClientName string // used in the greeting
	InvoiceID  string // e.g. "INV-20260831-0042"
	Total      float64
	Filename   string // attachment filename, e.g. "invoice-INV-20260831-0042.pdf"
	PDF        []byte // raw document bytes; base64-encoded on the wire
}

// ReceiptParams holds the data for the delayed payment-receipt email.
type ReceiptParams struct {
	To         string
	ClientName string
	InvoiceID  string
	Total      float64
	SendAt     time.Time // provider-side scheduled delivery time
}

// Sender is the interface the invoice pipeline uses to send email.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	// SendInvoice sends the invoice email immediately and returns the
	// provider's email id.
	SendInvoice(ctx context.Context, p InvoiceParams) (string, error)

	// ScheduleReceipt asks the provider to deliver the receipt email at
	// p.SendAt and returns the provider's email id. Failures here are
	// best-effort for the caller — they never invalidate the invoice send.
	ScheduleReceipt(ctx context.Context, p ReceiptParams) (string, error)
}
