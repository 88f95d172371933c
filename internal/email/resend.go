package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultAPIBase = "https://api.resend.com"

// resendClient is the concrete Sender backed by the Resend API.
type resendClient struct {
	apiKey     string
	fromAddr   string // e.g. "billing@invoicerelay.com"
	fromName   string // e.g. "Invoice Relay"
	apiBase    string
	httpClient *http.Client
}

// NewResendClient returns a Sender that delivers email via Resend.
func NewResendClient(apiKey, fromAddr, fromName string) Sender {
	return &resendClient{
		apiKey:   apiKey,
		fromAddr: fromAddr,
		fromName: fromName,
		apiBase:  defaultAPIBase,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ─── RESEND API SHAPES ────────────────────────────────────────────────────────

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

type resendRequest struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
	ScheduledAt string             `json:"scheduled_at,omitempty"` // RFC 3339
}

type resendResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Name       string `json:"name"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

// ─── SENDER IMPLEMENTATION ────────────────────────────────────────────────────

// SendInvoice sends the invoice notification email with the PDF attached.
func (c *resendClient) SendInvoice(ctx context.Context, p InvoiceParams) (string, error) {
	subject := fmt.Sprintf("Invoice %s from %s", p.InvoiceID, c.fromName)
	html := invoiceHTML(c.fromName, p.ClientName, p.InvoiceID, FormatCurrency(p.Total))

	req := resendRequest{
		Subject: subject,
		HTML:    html,
		Attachments: []resendAttachment{{
			Filename: p.Filename,
			Content:  base64.StdEncoding.EncodeToString(p.PDF),
		}},
	}

	return c.send(ctx, p.To, req)
}

// ScheduleReceipt asks Resend to deliver the receipt email at p.SendAt.
func (c *resendClient) ScheduleReceipt(ctx context.Context, p ReceiptParams) (string, error) {
	req := resendRequest{
		Subject:     fmt.Sprintf("Receipt for Invoice %s", p.InvoiceID),
		HTML:        receiptHTML(c.fromName, p.ClientName, p.InvoiceID, FormatCurrency(p.Total)),
		ScheduledAt: p.SendAt.UTC().Format(time.RFC3339),
	}

	return c.send(ctx, p.To, req)
}

// ─── HTTP SEND ────────────────────────────────────────────────────────────────

func (c *resendClient) send(ctx context.Context, to string, reqBody resendRequest) (string, error) {
	reqBody.From = fmt.Sprintf("%s <%s>", c.fromName, c.fromAddr)
	reqBody.To = []string{to}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("email: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/emails",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("email: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// Resend dedupes retried sends on this key for 24 hours.
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("email: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("email: read response: %w", err)
	}

	var parsed resendResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("email: unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("email: Resend error %s: %s", parsed.Error.Name, parsed.Error.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("email: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	return parsed.ID, nil
}
