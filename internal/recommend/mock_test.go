package recommend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/jonathan/career-analyzer/internal/llm"
)

// MockLLMClient implements llm.Client for testing.
type MockLLMClient struct {
	mu      sync.Mutex
	prompts []string
	closed  bool

	GenerateContentFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, _ llm.ModelTier, _ ...llm.CallOption) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt)
	}
	return "", errors.New("not implemented")
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, opts ...llm.CallOption) (string, error) {
	return m.GenerateContent(ctx, prompt, tier, opts...)
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	return llm.DefaultConfig().GetModel(tier)
}

func (m *MockLLMClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockLLMClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *MockLLMClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// respond answers the connectivity check with a greeting and every other prompt with body.
func respond(body string, err error) func(context.Context, string) (string, error) {
	return func(_ context.Context, prompt string) (string, error) {
		if prompt == "Hello" {
			return "Hi!", nil
		}
		return body, err
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
