package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationOptions son los parámetros de muestreo que se envían al proveedor.
// Un valor cero deja el default del proveedor.
type GenerationOptions struct {
	Temperature float64
	TopP        float64
	TopK        int
}

// DefaultGenerationOptions son los parámetros usados para los consejos de estilo de vida.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{Temperature: 0.75, TopP: 0.95, TopK: 40}
}

var (
	ErrNotConfigured = errors.New("llm client not configured")
	ErrEmptyResponse = errors.New("llm empty response")
)

// APIError es una respuesta de error del proveedor.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error: status=%d: %s", e.StatusCode, e.Message)
}

// IsQuotaExceeded indica si err es un rechazo por cuota o rate limit del proveedor.
func IsQuotaExceeded(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "quota")
}

// IsInvalidKey indica si err se debe a una clave API rechazada.
func IsInvalidKey(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "api key not valid") || strings.Contains(msg, "invalid api key")
}

// HTTPClient implementa LLMClient usando la API de OpenAI-compatible.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	opts    GenerationOptions
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
func NewHTTPClient(baseURL, apiKey, model string, opts GenerationOptions, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		opts:    opts,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}
	if c.opts.Temperature > 0 {
		t := c.opts.Temperature
		reqBody.Temperature = &t
	}
	if c.opts.TopP > 0 {
		p := c.opts.TopP
		reqBody.TopP = &p
	}

	var cr chatResponse
	status, err := postJSON(ctx, c.client, c.baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, reqBody, &cr)
	if err != nil {
		return "", err
	}

	if cr.Error != nil {
		c.logger.Warn("llm error response", zap.Int("status", status), zap.String("message", cr.Error.Message))
		return "", &APIError{StatusCode: status, Message: cr.Error.Message}
	}
	if status >= 400 {
		c.logger.Warn("llm error status", zap.Int("status", status))
		return "", &APIError{StatusCode: status, Message: http.StatusText(status)}
	}

	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return cr.Choices[0].Message.Content, nil
}

// postJSON envía body y decodifica la respuesta en out aunque el status sea de error,
// para que el llamador pueda leer el mensaje del proveedor.
func postJSON(ctx context.Context, hc *http.Client, url string, headers map[string]string, body, out any) (int, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		if resp.StatusCode >= 400 {
			return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		return resp.StatusCode, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp.StatusCode, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
