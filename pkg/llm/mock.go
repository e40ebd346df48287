package llm

import "context"

// MockClient is a configurable mock for testing generator functionality.
// Set the function fields to control behavior in tests.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked. If nil, returns
	// empty text and nil error.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	CompleteCalls int
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.CompleteCalls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return "", nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

var _ Client = (*MockClient)(nil)
