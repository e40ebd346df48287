// Package llm provides clients for the external SQL-generation models.
package llm

import "context"

// Client is the surface the generation service needs from a model
// provider. Implementations must be safe for concurrent use. Use this
// interface for dependency injection to enable mocking in tests.
type Client interface {
	// Complete sends a system+user prompt pair and returns the raw model
	// output text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Model returns the configured model name.
	Model() string
}

// Compile-time checks that both provider clients implement Client.
var (
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
)
