package llm

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errType   ErrorType
		retryable bool
	}{
		{"nil", nil, "", false},
		{"unauthorized", errors.New("status 401 Unauthorized"), ErrorTypeAuth, false},
		{"invalid key", errors.New("invalid api key provided"), ErrorTypeAuth, false},
		{"rate limit", errors.New("429: rate limit exceeded"), ErrorTypeRateLimit, true},
		{"deadline", errors.New("context deadline exceeded"), ErrorTypeTimeout, true},
		{"refused", errors.New("dial tcp: connection refused"), ErrorTypeConnection, true},
		{"missing model", errors.New("404 model not found"), ErrorTypeModel, false},
		{"other", errors.New("something odd"), ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("ClassifyError(nil) = %v, want nil", got)
				}
				return
			}
			if got.Type != tt.errType {
				t.Errorf("type = %v, want %v", got.Type, tt.errType)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", got.Retryable, tt.retryable)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error does not unwrap to cause")
			}
		})
	}
}

func TestClassifyError_PassThrough(t *testing.T) {
	orig := &Error{Type: ErrorTypeRateLimit, Message: "rate limited", Retryable: true}
	if got := ClassifyError(orig); got != orig {
		t.Error("already-classified error should pass through unchanged")
	}
}

func TestFactory(t *testing.T) {
	logger := zap.NewNop()

	if _, err := NewClient("openai", &Config{Endpoint: "http://localhost:8000/v1", Model: "m"}, logger); err != nil {
		t.Errorf("openai client: %v", err)
	}
	if _, err := NewClient("anthropic", &Config{APIKey: "k", Model: "m"}, logger); err != nil {
		t.Errorf("anthropic client: %v", err)
	}
	if _, err := NewClient("gemini", &Config{}, logger); err == nil {
		t.Error("expected error for unknown provider")
	}
	if _, err := NewClient("openai", &Config{Model: "m"}, logger); err == nil {
		t.Error("expected error for missing endpoint")
	}
	if _, err := NewClient("anthropic", &Config{Model: "m"}, logger); err == nil {
		t.Error("expected error for missing API key")
	}
}
