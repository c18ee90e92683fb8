package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGO_CONNECTION_STRING", "mongodb://localhost:27017")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHANNEL_USERNAME", "@quiz")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SyncInterval != 300*time.Second {
		t.Errorf("SyncInterval = %v, want 300s", cfg.SyncInterval)
	}
	if cfg.SendSpacing != 3*time.Second {
		t.Errorf("SendSpacing = %v, want 3s", cfg.SendSpacing)
	}
	if cfg.RetryAttempts != 3 || cfg.RetryDelay != 2*time.Second {
		t.Errorf("retry defaults = %d/%v, want 3/2s", cfg.RetryAttempts, cfg.RetryDelay)
	}
	if cfg.TargetLang != "gu" {
		t.Errorf("TargetLang = %q, want gu", cfg.TargetLang)
	}
}

func TestLoadFailsWithoutRequiredVars(t *testing.T) {
	cases := []string{"MONGO_CONNECTION_STRING", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHANNEL_USERNAME"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded without %s", missing)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SYNC_INTERVAL_SECONDS", "60")
	t.Setenv("SEND_SPACING_SECONDS", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SyncInterval != time.Minute {
		t.Errorf("SyncInterval = %v, want 1m", cfg.SyncInterval)
	}
	if cfg.SendSpacing != time.Second {
		t.Errorf("SendSpacing = %v, want 1s", cfg.SendSpacing)
	}
}
