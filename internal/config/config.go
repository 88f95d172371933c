// Package config loads and validates all environment variables at startup.
// Every other package receives typed values — nothing reads os.Getenv directly.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port string // default "8080"
	Env  string // "development" | "staging" | "production"

	// ── Resend ────────────────────────────────────────────────────────────────
	ResendAPIKey  string
	EmailFromAddr string // e.g. "billing@invoicerelay.com"
	EmailFromName string // e.g. "Invoice Relay"

	// ── Webhooks ──────────────────────────────────────────────────────────────
	// WebhookSigningSecret is the signing secret from the Resend dashboard
	// (whsec_...). It is intentionally NOT required at startup: an absent
	// secret surfaces as a 401 on every webhook delivery, never as a crash.
	WebhookSigningSecret string

	// SignatureTolerance is the allowed clock skew between the svix-timestamp
	// header and server time. Default 5 minutes.
	SignatureTolerance time.Duration

	// ── Invoicing ─────────────────────────────────────────────────────────────
	// ReceiptDelay is the default scheduling offset for receipt emails when
	// the request does not specify delay_minutes. Default 1 minute.
	ReceiptDelay time.Duration
}

// Load reads all environment variables and returns a validated Config.
// It automatically loads a .env file from the working directory when present,
// so plain `go run ./cmd/api` works in development without any wrapper.
// Real environment variables always take precedence over .env values.
func Load() (*Config, error) {
	loadDotEnv(".env")

	c := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		EmailFromAddr:        getEnv("FROM_EMAIL", "billing@invoicerelay.com"),
		EmailFromName:        getEnv("FROM_NAME", "Invoice Relay"),
		WebhookSigningSecret: os.Getenv("WEBHOOK_SIGNING_SECRET"),
		SignatureTolerance:   getEnvAsDuration("SIGNATURE_TOLERANCE", 5*time.Minute),
		ReceiptDelay:         getEnvAsDuration("RECEIPT_DELAY_MINUTES", time.Minute),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	required := map[string]string{
		"RESEND_API_KEY": c.ResendAPIKey,
		"FROM_EMAIL":     c.EmailFromAddr,
		"FROM_NAME":      c.EmailFromName,
	}

	for name, val := range required {
		if val == "" {
			errs = append(errs, fmt.Errorf("missing required env var: %s", name))
		}
	}

	if c.SignatureTolerance <= 0 {
		errs = append(errs, fmt.Errorf("SIGNATURE_TOLERANCE must be positive"))
	}

	return errors.Join(errs...)
}

// ─── DOT-ENV LOADER ──────────────────────────────────────────────────────────

// loadDotEnv reads key=value pairs from path and sets them in the environment,
// but only for keys that are not already set. This means real env vars (e.g.
// from Docker / Railway / your shell) always win over the file.
// Missing file, blank lines, and #-comments are all silently ignored.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // file absent — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Strip optional surrounding quotes: KEY="value" or KEY='value'
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		// Only set if the key isn't already present in the environment.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	// Try a plain integer first (treated as seconds, minutes, or hours
	// depending on the variable name).
	if value, err := strconv.Atoi(valueStr); err == nil {
		switch {
		case strings.Contains(key, "HOURS"):
			return time.Duration(value) * time.Hour
		case strings.Contains(key, "MINUTES"):
			return time.Duration(value) * time.Minute
		default:
			return time.Duration(value) * time.Second
		}
	}
	// Fall back to Go duration syntax: "30s", "5m", "1h", etc.
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}
