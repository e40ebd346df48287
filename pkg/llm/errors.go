package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies generator failures for logging and reporting.
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeModel      ErrorType = "model"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error is a structured generator error with classification.
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := []string{string(e.Type)}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether the failure is transient.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// ClassifyError categorizes a provider error into a structured Error.
// Already-classified errors pass through unchanged.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	switch {
	case strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") || strings.Contains(lower, "authentication"):
		return &Error{Type: ErrorTypeAuth, Message: "authentication failed", Cause: err, StatusCode: statusCode}

	case strings.Contains(errStr, "429") || strings.Contains(lower, "rate limit"):
		return &Error{Type: ErrorTypeRateLimit, Message: "rate limited", Retryable: true, Cause: err, StatusCode: statusCode}

	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return &Error{Type: ErrorTypeTimeout, Message: "request timed out", Retryable: true, Cause: err, StatusCode: statusCode}

	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "connection reset"):
		return &Error{Type: ErrorTypeConnection, Message: "endpoint unreachable", Retryable: true, Cause: err, StatusCode: statusCode}

	case strings.Contains(errStr, "404") || strings.Contains(lower, "model not found"):
		return &Error{Type: ErrorTypeModel, Message: "model unavailable", Cause: err, StatusCode: statusCode}

	default:
		return &Error{Type: ErrorTypeUnknown, Message: "request failed", Cause: err, StatusCode: statusCode}
	}
}
