package config_test

import (
	"testing"
	"time"

	"riskspin-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCRIPT_URL", "https://script.example.com/exec")
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RANKING_INTERVAL", "")
	t.Setenv("GATEWAY_TIMEOUT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.RankingInterval != 15*time.Second {
		t.Errorf("Expected ranking interval 15s, got %v", cfg.RankingInterval)
	}
	if cfg.JWTSecret == "" {
		t.Error("Development config should fall back to a JWT secret")
	}
}

func TestLoadRequiresScriptURL(t *testing.T) {
	t.Setenv("SCRIPT_URL", "")

	if _, err := config.Load(); err == nil {
		t.Error("Load should fail without SCRIPT_URL")
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("SCRIPT_URL", "https://script.example.com/exec")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Error("Production config without JWT_SECRET should fail")
	}
}

func TestLoadDurations(t *testing.T) {
	t.Setenv("SCRIPT_URL", "https://script.example.com/exec")
	t.Setenv("ENV", "")
	t.Setenv("RANKING_INTERVAL", "30")
	t.Setenv("GATEWAY_TIMEOUT", "5s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RankingInterval != 30*time.Second {
		t.Errorf("Expected 30s, got %v", cfg.RankingInterval)
	}
	if cfg.GatewayTimeout != 5*time.Second {
		t.Errorf("Expected 5s, got %v", cfg.GatewayTimeout)
	}

	t.Setenv("RANKING_INTERVAL", "soon")
	if _, err := config.Load(); err == nil {
		t.Error("Invalid duration should fail")
	}
}
