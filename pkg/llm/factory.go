package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// NewClient builds a provider client from configuration. Provider names
// match the config surface: "openai" covers any OpenAI-compatible
// endpoint, "anthropic" the Anthropic Messages API.
func NewClient(provider string, cfg *Config, logger *zap.Logger) (Client, error) {
	switch provider {
	case "", "openai":
		return NewOpenAIClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", provider)
	}
}
