package config

import (
	"time"

	"github.com/caarlos0/env/v10"

	"wellness-planner/internal/catalog"
	"wellness-planner/internal/domain"
	"wellness-planner/internal/llm"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	CatalogPath        string `env:"CATALOG_PATH"`
	CatalogDatabaseURL string `env:"CATALOG_DATABASE_URL"`
	DefaultProductID   string `env:"DEFAULT_PRODUCT_ID"`

	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMBaseURL     string        `env:"LLM_BASE_URL"`
	LLMModel       string        `env:"LLM_MODEL"`
	LLMTemperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.75"`
	LLMTopP        float64       `env:"LLM_TOP_P" envDefault:"0.95"`
	LLMTopK        int           `env:"LLM_TOP_K" envDefault:"40"`
	TipsTimeout    time.Duration `env:"TIPS_TIMEOUT" envDefault:"20s"`
	TipsRateWindow time.Duration `env:"TIPS_RATE_WINDOW" envDefault:"1h"`
	TipsRateMax    int           `env:"TIPS_RATE_MAX" envDefault:"5"`

	WebhookURL     string        `env:"WEBHOOK_URL"`
	WebhookTimeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`

	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	ShareSecret string        `env:"SHARE_SECRET"`
	ShareTTL    time.Duration `env:"SHARE_TTL" envDefault:"168h"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"Plan de Bienestar Fuxion"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AdvisorName  string `env:"ADVISOR_NAME" envDefault:"Tu Asesora de Bienestar"`
	AdvisorPhone string `env:"ADVISOR_PHONE"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LLMProviderConfig traduce la configuración al cliente de LLM.
func (c *Config) LLMProviderConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		Provider: c.LLMProvider,
		APIKey:   c.LLMAPIKey,
		BaseURL:  c.LLMBaseURL,
		Model:    c.LLMModel,
		Options: llm.GenerationOptions{
			Temperature: c.LLMTemperature,
			TopP:        c.LLMTopP,
			TopK:        c.LLMTopK,
		},
	}
}

// CatalogSource indica de dónde cargar el catálogo.
func (c *Config) CatalogSource() catalog.SourceConfig {
	return catalog.SourceConfig{
		Path:             c.CatalogPath,
		DatabaseURL:      c.CatalogDatabaseURL,
		DefaultProductID: c.DefaultProductID,
	}
}

func (c *Config) AdvisorContact() domain.AdminContact {
	return domain.AdminContact{Name: c.AdvisorName, Phone: c.AdvisorPhone}
}
