package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrTruncated is returned when a response hit the output token cap before
// any text was produced. Thinking models count reasoning tokens against the cap.
var ErrTruncated = errors.New("response truncated before any text")

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...CallOption) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier, opts ...CallOption) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// CallOption adjusts a single generation call.
type CallOption func(*callSettings)

type callSettings struct {
	model     string
	maxTokens int32
}

// WithModelName pins the call to a specific model, bypassing the tier mapping.
func WithModelName(name string) CallOption {
	return func(s *callSettings) { s.model = name }
}

// WithMaxOutputTokens overrides the configured output token cap.
func WithMaxOutputTokens(n int32) CallOption {
	return func(s *callSettings) { s.maxTokens = n }
}

func applyOptions(opts []CallOption) callSettings {
	var s callSettings
	for _, o := range opts {
		if o != nil {
			o(&s)
		}
	}
	return s
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

func (c *GeminiClient) model(tier ModelTier, s callSettings) (*genai.GenerativeModel, error) {
	name := s.model
	if name == "" {
		name = c.config.GetModel(tier)
	}
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	p := c.config.Params
	if s.maxTokens > 0 {
		p.MaxOutputTokens = s.maxTokens
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(p.Temperature)
	if p.TopP > 0 {
		model.SetTopP(p.TopP)
	}
	if p.TopK > 0 {
		model.SetTopK(p.TopK)
	}
	if p.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(p.MaxOutputTokens)
	}
	return model, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...CallOption) (string, error) {
	model, err := c.model(tier, applyOptions(opts))
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier, opts ...CallOption) (string, error) {
	model, err := c.model(tier, applyOptions(opts))
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SelectModel sends a short prompt to each candidate model in order and returns
// the first one that answers. A reply cut off by the token cap still counts:
// the model exists and accepted the request.
func SelectModel(ctx context.Context, c Client, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", errors.New("no model candidates")
	}
	var errs []error
	for _, name := range candidates {
		out, err := c.GenerateContent(ctx, "Hello", TierLite, WithModelName(name))
		if errors.Is(err, ErrTruncated) || (err == nil && strings.TrimSpace(out) != "") {
			return name, nil
		}
		if err == nil {
			err = errors.New("empty response")
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("no model available: %w", errors.Join(errs...))
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	truncated := candidate.FinishReason == genai.FinishReasonMaxTokens
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		if truncated {
			return "", ErrTruncated
		}
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		if truncated {
			return "", ErrTruncated
		}
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
