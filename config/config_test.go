package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "REDIS_ADDR", "DATABASE_URL", "LOG_LEVEL", "LIMIT_DAILY", "RATE_LIMIT_CAPACITY"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Errorf("expected info level, got %s", cfg.LogLevel)
	}
	if cfg.Limits.PerTransaction.String() != "50000" || cfg.Limits.Daily.String() != "100000" {
		t.Errorf("unexpected limits: %+v", cfg.Limits)
	}
	if cfg.MinDepositAmount != 1000 {
		t.Errorf("expected minimum deposit 1000, got %.2f", cfg.MinDepositAmount)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("expected 1m window, got %s", cfg.RateLimitWindow)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LIMIT_DAILY", "25000")
	t.Setenv("RATE_LIMIT_CAPACITY", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Limits.Daily.String() != "25000" {
		t.Errorf("expected daily limit 25000, got %s", cfg.Limits.Daily)
	}
	if cfg.RateLimitCapacity != 7 {
		t.Errorf("expected capacity 7, got %d", cfg.RateLimitCapacity)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"LIMIT_DAILY":         "-5",
		"RATE_LIMIT_CAPACITY": "many",
		"CACHE_TTL":           "forever",
		"LOG_LEVEL":           "loud",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}
