package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wellness-planner/internal/domain"
)

// WebhookNotifier hace POST JSON del formulario a una URL configurada.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) (*WebhookNotifier, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("webhook url is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (n *WebhookNotifier) NotifySubmission(ctx context.Context, profile domain.ClientProfile) error {
	body, err := json.Marshal(NewSubmissionPayload(profile))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do webhook request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook http error: status=%d", resp.StatusCode)
	}
	return nil
}
