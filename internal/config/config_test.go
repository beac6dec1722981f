package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.LLMProvider != "gemini" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.LLMTemperature != 0.75 || cfg.LLMTopP != 0.95 || cfg.LLMTopK != 40 {
		t.Fatalf("unexpected generation defaults %+v", cfg)
	}
	if cfg.SessionTTL != 2*time.Hour || cfg.TipsTimeout != 20*time.Second {
		t.Fatalf("unexpected duration defaults %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors default %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("TIPS_RATE_MAX", "2")
	t.Setenv("SHARE_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.LLMProvider != "openai" || cfg.TipsRateMax != 2 || cfg.ShareTTL != 30*time.Minute {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error for invalid duration")
	}
}
