package config

import (
	"strings"
	"testing"
)

func baseConfig() *Config {
	return &Config{
		Port:                 "8000",
		Env:                  "production",
		DatabaseURL:          "postgres://localhost/billing",
		DBMaxConns:           20,
		DBMinConns:           5,
		DBStatementTimeoutMS: 30000,
		RateLimitRPS:         100,
		RateLimitBurst:       200,
		RequestTimeoutSec:    30,
		JWTSecret:            strings.Repeat("s", 32),
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when JWT_SECRET missing in production")
	}

	cfg.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for short JWT_SECRET")
	}
}

func TestValidateDevSkipsSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "development"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error in dev mode: %v", err)
	}
}

func TestValidatePoolBounds(t *testing.T) {
	cfg := baseConfig()
	cfg.DBMaxConns = 2
	cfg.DBMinConns = 10
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when max conns below min conns")
	}
}

func TestValidateTimeouts(t *testing.T) {
	cfg := baseConfig()
	cfg.DBStatementTimeoutMS = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero statement timeout")
	}

	cfg = baseConfig()
	cfg.RequestTimeoutSec = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative request timeout")
	}
}
