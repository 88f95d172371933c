// Package invoice holds the invoice domain types, the human-readable id
// generator, and the pipeline that turns an invoice request into a rendered
// PDF and a sent email. It never touches HTTP — the api package adapts
// requests and responses.
package invoice

import (
	"context"
	"encoding/json"
	"fmt"
)

// LineItem is one billable row. Immutable once submitted.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount is the derived line total.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Rate
}

// Invoice is the in-flight representation of one invoice. It exists only for
// the duration of a request — its durable form is the rendered PDF and the
// sent email.
type Invoice struct {
	ID          string
	ClientName  string
	ClientEmail string
	LineItems   []LineItem
	Total       float64
}

// Total sums quantity × rate over all items. No rounding happens here;
// rounding is a formatting concern.
func Total(items []LineItem) float64 {
	var sum float64
	for _, li := range items {
		sum += li.Amount()
	}
	return sum
}

// Document is a rendered PDF plus the attachment filename derived from the
// invoice id. It is handed to the email sender and then discarded.
type Document struct {
	Bytes    []byte
	Filename string
}

// Filename returns the content-disposition filename for an invoice id.
func Filename(invoiceID string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceID)
}

// Renderer produces the PDF document for an invoice. The concrete
// implementation lives in the pdf package; tests inject a stub.
type Renderer interface {
	Render(ctx context.Context, inv Invoice) (Document, error)
}

// Request is the decoded invoice-creation request.
//
// DelayMinutes is kept raw: the public API contract treats a non-numeric
// delay_minutes as "use the default" rather than a decode failure, so the
// pipeline parses it leniently.
type Request struct {
	LineItems       []LineItem      `json:"lineItems"`
	ClientName      string          `json:"clientName"`
	ClientEmail     string          `json:"clientEmail"`
	ScheduleReceipt bool            `json:"schedule_receipt"`
	DelayMinutes    json.RawMessage `json:"delay_minutes"`
}

// Result is the successful outcome of Pipeline.Process.
type Result struct {
	InvoiceID string
	Total     float64
	From      string // "Name <addr>" as used on the outbound email
	To        string
	// ScheduledEmailID is the provider id of the scheduled receipt email.
	// nil when no receipt was requested or the best-effort schedule failed.
	ScheduledEmailID *string
}
