package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	mu      sync.Mutex
	Calls   int
	Prompts []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Response, m.Err
}

// CallCount es seguro para usar desde goroutines.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
