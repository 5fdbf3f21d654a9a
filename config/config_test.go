package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STACKER_USER", "STACKER_STORE", "STACKER_QUOTE_TTL", "STACKER_RATE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.User != "" || cfg.Store != "" {
		t.Errorf("Load() = %+v, want empty values that were explicitly set", cfg)
	}
	if cfg.QuoteTTL != 10*time.Minute {
		t.Errorf("Load().QuoteTTL = %v, want %v", cfg.QuoteTTL, 10*time.Minute)
	}
	if cfg.Rate != 10 {
		t.Errorf("Load().Rate = %v, want 10", cfg.Rate)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STACKER_USER", "alice@example.com")
	t.Setenv("STACKER_STORE", "sqlite")
	t.Setenv("STACKER_QUOTE_TTL", "90s")
	t.Setenv("STACKER_QUOTE_INTERVAL", "not a duration")
	t.Setenv("STACKER_RATE", "2.5")

	cfg := Load()
	if cfg.User != "alice@example.com" {
		t.Errorf("Load().User = %q, want %q", cfg.User, "alice@example.com")
	}
	if cfg.Store != "sqlite" {
		t.Errorf("Load().Store = %q, want %q", cfg.Store, "sqlite")
	}
	if cfg.QuoteTTL != 90*time.Second {
		t.Errorf("Load().QuoteTTL = %v, want %v", cfg.QuoteTTL, 90*time.Second)
	}
	if cfg.QuoteInterval != 30*time.Second {
		t.Errorf("Load().QuoteInterval = %v, want the default %v", cfg.QuoteInterval, 30*time.Second)
	}
	if cfg.Rate != 2.5 {
		t.Errorf("Load().Rate = %v, want 2.5", cfg.Rate)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := NewLogger(tt.level).GetLevel(); got != tt.want {
			t.Errorf("NewLogger(%q).GetLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}
