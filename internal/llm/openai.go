package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIProvider implements Provider on top of the OpenAI chat completion API.
type OpenAIProvider struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg Config, logger *zap.Logger) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	logger.Info("OpenAI provider initialized", zap.String("model", cfg.Model))

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Complete sends one system+user exchange and returns the reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Close is a no-op; the underlying client has no resources to release.
func (p *OpenAIProvider) Close() error {
	return nil
}

// ModelInfo returns provider information.
func (p *OpenAIProvider) ModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"provider": "openai",
		"model":    p.cfg.Model,
	}
}
