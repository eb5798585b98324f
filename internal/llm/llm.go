package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider is a chat-completion capability: a system instruction plus a user
// message in, free-form text out. Implementations must honour ctx deadlines.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Close() error
	ModelInfo() map[string]interface{}
}

// Config for an LLM provider instance.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // OpenAI-compatible endpoints only
	Temperature float32
	MaxTokens   int
}

// New creates a provider of the given type ("openai" or "gemini").
func New(providerType string, cfg Config, logger *zap.Logger) (Provider, error) {
	switch providerType {
	case "openai":
		return NewOpenAIProvider(cfg, logger)
	case "gemini":
		return NewGeminiProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", providerType)
	}
}
