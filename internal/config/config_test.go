package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/interviews?sslmode=disable")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("GOOGLE_GENERATIVE_AI_API_KEY", "test-key")
	t.Setenv("VAPI_WEB_TOKEN", "vapi-token")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Errorf("env = %q, want development", cfg.Env)
	}
	if cfg.GetServerAddr() != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.GetServerAddr())
	}
	if cfg.JWT.SessionTTL != 168*time.Hour {
		t.Errorf("session ttl = %s, want 168h", cfg.JWT.SessionTTL)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash-001" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.Timeout != 30*time.Second || cfg.Gemini.MaxRetries != 2 {
		t.Errorf("gemini timeout/retries = %s/%d, want 30s/2", cfg.Gemini.Timeout, cfg.Gemini.MaxRetries)
	}
	if got := cfg.GetCORSOrigins(); len(got) != 2 {
		t.Errorf("cors origins = %v, want 2 defaults", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv above registered the restore; drop the variable entirely
	os.Unsetenv("DATABASE_URL")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*testing.T)
		wantErr bool
	}{
		{"valid", func(t *testing.T) {}, false},
		{"bad env", func(t *testing.T) { t.Setenv("APP_ENV", "prod") }, true},
		{"bad port", func(t *testing.T) { t.Setenv("APP_PORT", "70000") }, true},
		{"short jwt secret", func(t *testing.T) { t.Setenv("JWT_SECRET", "short") }, true},
		{"tiny session ttl", func(t *testing.T) { t.Setenv("SESSION_TTL", "10s") }, true},
		{"tiny gemini timeout", func(t *testing.T) { t.Setenv("GEMINI_TIMEOUT", "100ms") }, true},
		{"bad stripe key", func(t *testing.T) { t.Setenv("STRIPE_SECRET_KEY", "pk_test_123") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			tt.mutate(t)

			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
