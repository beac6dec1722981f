package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ProviderConfig selecciona e inicializa el proveedor de LLM.
type ProviderConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Options  GenerationOptions
}

// NewClient devuelve el cliente para el proveedor configurado. Sin clave API
// devuelve un cliente deshabilitado que siempre falla con ErrNotConfigured.
func NewClient(cfg ProviderConfig, logger *zap.Logger) (LLMClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return DisabledClient{}, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		return NewGeminiClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Options, logger), nil
	case "openai":
		return NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Options, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// DisabledClient se usa cuando no hay clave API configurada.
type DisabledClient struct{}

func (DisabledClient) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
