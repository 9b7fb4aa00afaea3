package config

import (
	"testing"
	"time"

	"github.com/danprtma/watchparty/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.MaxMessageSize != domain.MaxMessageSize {
		t.Errorf("Expected max message size %d, got %d", domain.MaxMessageSize, cfg.MaxMessageSize)
	}
	if cfg.PongWait != domain.DefaultPongWait {
		t.Errorf("Expected pong wait %v, got %v", domain.DefaultPongWait, cfg.PongWait)
	}
	if cfg.PingPeriod != domain.DefaultPingPeriod {
		t.Errorf("Expected ping period %v, got %v", domain.DefaultPingPeriod, cfg.PingPeriod)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("Expected default allowed origins")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PUBLIC_URL", "https://party.example.com/")
	t.Setenv("ALLOWED_ORIGINS", "https://party.example.com, https://other.example.com")
	t.Setenv("RATE_LIMIT_API", "50")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_MESSAGE_SIZE", "8192")
	t.Setenv("PONG_WAIT", "5m")
	t.Setenv("PING_PERIOD", "10s")

	cfg := LoadFromEnv()

	if cfg.Port != "9999" {
		t.Errorf("Expected port 9999, got %s", cfg.Port)
	}
	if cfg.PublicURL != "https://party.example.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.PublicURL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://other.example.com" {
		t.Errorf("Unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitAPI != 50 {
		t.Errorf("Expected rate limit 50, got %v", cfg.RateLimitAPI)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug, got %s", cfg.LogLevel)
	}
	if cfg.MaxMessageSize != 8192 {
		t.Errorf("Expected 8192, got %d", cfg.MaxMessageSize)
	}
	if cfg.PongWait != 5*time.Minute {
		t.Errorf("Expected 5m, got %v", cfg.PongWait)
	}
	if cfg.PingPeriod != 10*time.Second {
		t.Errorf("Expected 10s, got %v", cfg.PingPeriod)
	}
}

func TestLoadFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_API", "not-a-number")
	t.Setenv("MAX_MESSAGE_SIZE", "-1")
	t.Setenv("PONG_WAIT", "soon")

	cfg := LoadFromEnv()

	if cfg.RateLimitAPI != DefaultConfig().RateLimitAPI {
		t.Errorf("Invalid rate limit should keep default, got %v", cfg.RateLimitAPI)
	}
	if cfg.MaxMessageSize != domain.MaxMessageSize {
		t.Errorf("Invalid size should keep default, got %d", cfg.MaxMessageSize)
	}
	if cfg.PongWait != domain.DefaultPongWait {
		t.Errorf("Invalid duration should keep default, got %v", cfg.PongWait)
	}
}

func TestParseOrigins(t *testing.T) {
	got := parseOrigins(" https://a.example.com ,, https://b.example.com ")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("Unexpected origins: %v", got)
	}
}
