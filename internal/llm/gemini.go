package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider on top of the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(cfg Config, logger *zap.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info("Gemini provider initialized", zap.String("model", cfg.Model))

	return &GeminiProvider{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Complete sends one system+user exchange and returns the reply text.
// The system instruction changes per call, so a model handle is built each
// time; handles are lightweight wrappers over the shared client.
func (p *GeminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	model := p.client.GenerativeModel(p.cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr(p.cfg.Temperature),
	}
	if p.cfg.MaxTokens > 0 {
		model.GenerationConfig.MaxOutputTokens = genai.Ptr(int32(p.cfg.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from gemini")
	}

	return strings.TrimSpace(string(textPart)), nil
}

// Close closes the underlying Gemini client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// ModelInfo returns provider information.
func (p *GeminiProvider) ModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"provider": "gemini",
		"model":    p.cfg.Model,
	}
}
