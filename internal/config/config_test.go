package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:token")
	t.Setenv("CHANNEL_ID", "@channel")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RETRY_ATTEMPTS", "")
	t.Setenv("RETRY_DELAY_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("retry attempts = %d, want 3", cfg.RetryAttempts)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("retry delay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.RetentionDays != 14 {
		t.Errorf("retention = %d, want 14", cfg.RetentionDays)
	}
}

func TestLoad_RetryOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RETRY_ATTEMPTS", "5")
	t.Setenv("RETRY_DELAY_SECONDS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RetryAttempts != 5 {
		t.Errorf("retry attempts = %d, want 5", cfg.RetryAttempts)
	}
	if cfg.RetryDelay != 4*time.Second {
		t.Errorf("retry delay = %v, want 4s", cfg.RetryDelay)
	}
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("CHANNEL_ID", "@channel")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if _, err := Load(); err == nil {
		t.Errorf("expected validation error without bot token")
	}
}
