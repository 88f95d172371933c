package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequired sets the minimum environment for Load to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("FROM_EMAIL", "billing@invoicerelay.com")
	t.Setenv("FROM_NAME", "Invoice Relay")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"PORT", "ENV", "WEBHOOK_SIGNING_SECRET",
		"SIGNATURE_TOLERANCE", "RECEIPT_DELAY_MINUTES",
	} {
		t.Setenv(key, "")
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Port != "8080" {
		t.Errorf("port: got %q", c.Port)
	}
	if c.Env != "development" {
		t.Errorf("env: got %q", c.Env)
	}
	if c.SignatureTolerance != 5*time.Minute {
		t.Errorf("signature tolerance: got %v", c.SignatureTolerance)
	}
	if c.ReceiptDelay != time.Minute {
		t.Errorf("receipt delay: got %v", c.ReceiptDelay)
	}
	if c.WebhookSigningSecret != "" {
		t.Errorf("signing secret: got %q", c.WebhookSigningSecret)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("WEBHOOK_SIGNING_SECRET", "whsec_c2VjcmV0")
	t.Setenv("SIGNATURE_TOLERANCE", "120")
	t.Setenv("RECEIPT_DELAY_MINUTES", "15")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Port != "9090" {
		t.Errorf("port: got %q", c.Port)
	}
	if c.Env != "production" {
		t.Errorf("env: got %q", c.Env)
	}
	if c.WebhookSigningSecret != "whsec_c2VjcmV0" {
		t.Errorf("signing secret: got %q", c.WebhookSigningSecret)
	}
	// Bare integers scale by the variable's name: seconds here, minutes there.
	if c.SignatureTolerance != 120*time.Second {
		t.Errorf("signature tolerance: got %v", c.SignatureTolerance)
	}
	if c.ReceiptDelay != 15*time.Minute {
		t.Errorf("receipt delay: got %v", c.ReceiptDelay)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("FROM_EMAIL", "")
	t.Setenv("FROM_NAME", "Invoice Relay")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"RESEND_API_KEY", "FROM_EMAIL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %s, got %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "FROM_NAME") {
		t.Errorf("error should not name FROM_NAME, got %v", err)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "30")
	if got := getEnvAsDuration("SOME_TIMEOUT", time.Minute); got != 30*time.Second {
		t.Errorf("plain integer: got %v", got)
	}

	t.Setenv("RETRY_MINUTES", "5")
	if got := getEnvAsDuration("RETRY_MINUTES", time.Minute); got != 5*time.Minute {
		t.Errorf("minutes-named integer: got %v", got)
	}

	t.Setenv("CACHE_HOURS", "2")
	if got := getEnvAsDuration("CACHE_HOURS", time.Minute); got != 2*time.Hour {
		t.Errorf("hours-named integer: got %v", got)
	}

	t.Setenv("SOME_TIMEOUT", "45s")
	if got := getEnvAsDuration("SOME_TIMEOUT", time.Minute); got != 45*time.Second {
		t.Errorf("duration syntax: got %v", got)
	}

	t.Setenv("SOME_TIMEOUT", "soon")
	if got := getEnvAsDuration("SOME_TIMEOUT", time.Minute); got != time.Minute {
		t.Errorf("garbage: got %v", got)
	}

	os.Unsetenv("UNSET_TIMEOUT")
	if got := getEnvAsDuration("UNSET_TIMEOUT", time.Minute); got != time.Minute {
		t.Errorf("unset: got %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	contents := strings.Join([]string{
		"# comment line",
		"",
		"DOTENV_PLAIN=value",
		`DOTENV_QUOTED="quoted value"`,
		"DOTENV_PRESET=file-value",
		"not a pair",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DOTENV_PRESET", "env-value")
	t.Setenv("DOTENV_PLAIN", "")
	t.Setenv("DOTENV_QUOTED", "")

	loadDotEnv(path)

	if got := os.Getenv("DOTENV_PLAIN"); got != "value" {
		t.Errorf("plain: got %q", got)
	}
	if got := os.Getenv("DOTENV_QUOTED"); got != "quoted value" {
		t.Errorf("quoted: got %q", got)
	}
	// Real environment wins over the file.
	if got := os.Getenv("DOTENV_PRESET"); got != "env-value" {
		t.Errorf("preset: got %q", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
}
