package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicClient is a stub implementation kept behind the provider switch
// until the SDK integration lands.
type AnthropicClient struct{}

// NewAnthropicClient constructs a new stub client.
func NewAnthropicClient(cfg AnthropicConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicClient{}, nil
}

// Complete is not yet implemented for Anthropic models.
func (a *AnthropicClient) Complete(ctx context.Context, input CompletionInput) (string, error) {
	return "", fmt.Errorf("anthropic completer not implemented")
}

// Evaluate is not yet implemented for Anthropic models.
func (a *AnthropicClient) Evaluate(ctx context.Context, input JudgeInput) (JudgeResult, error) {
	return JudgeResult{}, fmt.Errorf("anthropic judge not implemented")
}
