package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/ehub?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PAYMENT_TTL", "")
	t.Setenv("PIX_KEY", "")
	t.Setenv("DEV_TOKENS", "")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com ,, ops@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	if cfg.PaymentTTL != 30*time.Minute {
		t.Errorf("PaymentTTL = %s, want 30m", cfg.PaymentTTL)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[0] != "admin@example.com" {
		t.Errorf("AdminEmails = %v", cfg.AdminEmails)
	}
	if cfg.PixKey == "" {
		t.Error("development PixKey should get a placeholder")
	}
	if cfg.StorageEnabled() {
		t.Error("storage should be disabled without R2 settings")
	}
	if cfg.DevTokens {
		t.Error("dev token issuer must be off unless DEV_TOKENS is set")
	}
}

func TestLoadDevTokens(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("DEV_TOKENS", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.DevTokens {
		t.Error("DEV_TOKENS=true should enable the dev token issuer")
	}

	t.Setenv("APP_ENV", "production")
	t.Setenv("PIX_KEY", "pix@ehub.gg")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DEV_TOKENS is enabled in production")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "SERVER_PORT", "http"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad env", "APP_ENV", "staging"},
		{"bad ttl", "PAYMENT_TTL", "soon"},
		{"negative interval", "SCHEDULER_INTERVAL", "-1s"},
		{"bad bool", "PAYMENT_AUTO_APPROVE", "maybe"},
		{"bad dev tokens", "DEV_TOKENS", "yes please"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q: expected error", tt.key, tt.val)
			}
		})
	}
}

func TestLoadProductionRequiresPixKey(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DEV_TOKENS", "")
	t.Setenv("PIX_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when PIX_KEY is missing in production")
	}

	t.Setenv("PIX_KEY", "pix@ehub.gg")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production config")
	}
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}
