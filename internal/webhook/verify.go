package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Verification failure taxonomy. The HTTP layer collapses all of these into
// an undifferentiated 401 — the distinction exists for server-side logs only,
// so a forger learns nothing from the response.
var (
	ErrNotConfigured    = errors.New("webhook: signing secret not configured")
	ErrMissingHeaders   = errors.New("webhook: missing webhook headers")
	ErrInvalidSignature = errors.New("webhook: signature mismatch")
	ErrExpiredSignature = errors.New("webhook: timestamp outside tolerance")
	ErrMalformedPayload = errors.New("webhook: malformed event payload")
)

const (
	secretPrefix = "whsec_"

	// placeholderSecret is the literal the provider's docs use in examples.
	// Deployments that copied it verbatim are unconfigured, not secured.
	placeholderSecret = "whsec_..."
)

// Verifier authenticates raw webhook deliveries. The concrete implementation
// is SvixVerifier; tests inject a stub.
type Verifier interface {
	Verify(rawBody []byte, h Headers) (Event, error)
}

// SvixVerifier implements the Svix signed-webhook scheme used by Resend:
// HMAC-SHA256 over the exact byte concatenation "<id>.<timestamp>.<body>",
// keyed with the base64-decoded secret material, compared in constant time
// against each "v1,<base64>" token of the signature header.
type SvixVerifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier constructs a SvixVerifier. secret may be empty — Verify then
// fails with ErrNotConfigured on every call instead of the process refusing
// to start. tolerance bounds the accepted clock skew in either direction.
func NewVerifier(secret string, tolerance time.Duration) *SvixVerifier {
	return &SvixVerifier{
		secret:    secret,
		tolerance: tolerance,
		now:       time.Now,
	}
}

// Verify authenticates rawBody against the three webhook headers and decodes
// the event. It is the only constructor of Event values.
//
// The check order is fixed: configuration, header presence, signature match,
// timestamp tolerance, payload shape. The secret check runs before any header
// is read, so an unconfigured deployment does no work on attacker input.
func (v *SvixVerifier) Verify(rawBody []byte, h Headers) (Event, error) {
	if v.secret == "" || v.secret == placeholderSecret {
		return Event{}, ErrNotConfigured
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(v.secret, secretPrefix))
	if err != nil {
		return Event{}, fmt.Errorf("%w: secret is not valid base64", ErrNotConfigured)
	}

	if h.ID == "" || h.Timestamp == "" || h.Signature == "" {
		return Event{}, ErrMissingHeaders
	}

	// Signed content is the exact byte-level concatenation id.timestamp.body.
	// Any deviation here and no provider signature will ever validate.
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(h.ID))
	mac.Write([]byte("."))
	mac.Write([]byte(h.Timestamp))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := mac.Sum(nil)

	// The signature header may carry several space-delimited versioned tokens
	// (key rotation). One constant-time match is enough; malformed tokens are
	// skipped, not fatal.
	matched := false
	for _, token := range strings.Fields(h.Signature) {
		version, encoded, ok := strings.Cut(token, ",")
		if !ok || version != "v1" {
			continue
		}
		sig, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		if hmac.Equal(sig, expected) {
			matched = true
		}
	}
	if !matched {
		return Event{}, ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(h.Timestamp, 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("%w: timestamp %q is not unix seconds", ErrExpiredSignature, h.Timestamp)
	}
	if skew := v.now().Sub(time.Unix(ts, 0)); skew > v.tolerance || skew < -v.tolerance {
		return Event{}, ErrExpiredSignature
	}

	var payload struct {
		Type string    `json:"type"`
		Data EventData `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Type == "" {
		return Event{}, fmt.Errorf("%w: missing type field", ErrMalformedPayload)
	}

	return Event{
		Type:    ParseEventType(payload.Type),
		RawType: payload.Type,
		Data:    payload.Data,
	}, nil
}
