package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("FREEPIK_API_KEY", "fpk-test")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("PORT", "")
	t.Setenv("DAILY_LIMIT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "3000")
	}
	if cfg.DailyLimit != 50 {
		t.Fatalf("DailyLimit mismatch: got %d want 50", cfg.DailyLimit)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval mismatch: got %v want 10s", cfg.PollInterval)
	}
	if cfg.PollTimeout != 10*time.Minute {
		t.Fatalf("PollTimeout mismatch: got %v want 10m", cfg.PollTimeout)
	}
	if cfg.FreepikBaseURL != "https://api.freepik.com/v1/ai/image-to-video" {
		t.Fatalf("FreepikBaseURL mismatch: got %q", cfg.FreepikBaseURL)
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("FREEPIK_API_KEY", "fpk-test")
	t.Setenv("DATABASE_URL", "postgres://example")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when TELEGRAM_BOT_TOKEN is missing")
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("FREEPIK_API_KEY", "")
	t.Setenv("DATABASE_URL", "postgres://example")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when FREEPIK_API_KEY is missing")
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("FREEPIK_API_KEY", "fpk-test")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("DAILY_LIMIT", "5")
	t.Setenv("POLL_INTERVAL_SECONDS", "2")
	t.Setenv("POLL_TIMEOUT_MINUTES", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DailyLimit != 5 {
		t.Fatalf("DailyLimit mismatch: got %d want 5", cfg.DailyLimit)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval mismatch: got %v want 2s", cfg.PollInterval)
	}
	if cfg.PollTimeout != time.Minute {
		t.Fatalf("PollTimeout mismatch: got %v want 1m", cfg.PollTimeout)
	}
}
