package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient implementa LLMClient contra el endpoint generateContent de Gemini.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	opts    GenerationOptions
	client  *http.Client
	logger  *zap.Logger
}

func NewGeminiClient(baseURL, apiKey, model string, opts GenerationOptions, logger *zap.Logger) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = "gemini-1.5-flash-latest"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		opts:    opts,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature: c.opts.Temperature,
			TopP:        c.opts.TopP,
			TopK:        c.opts.TopK,
		},
	}

	url := c.baseURL + "/models/" + c.model + ":generateContent"
	var gr geminiResponse
	status, err := postJSON(ctx, c.client, url, map[string]string{"x-goog-api-key": c.apiKey}, reqBody, &gr)
	if err != nil {
		return "", err
	}

	if gr.Error != nil {
		c.logger.Warn("gemini error response", zap.Int("status", status), zap.String("message", gr.Error.Message))
		code := status
		if code < 400 && gr.Error.Code >= 400 {
			code = gr.Error.Code
		}
		return "", &APIError{StatusCode: code, Message: gr.Error.Message}
	}
	if status >= 400 {
		c.logger.Warn("gemini error status", zap.Int("status", status))
		return "", &APIError{StatusCode: status, Message: http.StatusText(status)}
	}

	var sb strings.Builder
	if len(gr.Candidates) > 0 {
		for _, p := range gr.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"topP,omitempty"`
	TopK        int     `json:"topK,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}
