package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type transientErr struct{ retryable bool }

func (e *transientErr) Error() string     { return "transient failure" }
func (e *transientErr) IsRetryable() bool { return e.retryable }

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoWithResultSucceedsFirstTry(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %q", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoWithResultRetriesTransientErrors(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &transientErr{retryable: true}
		}
		return "recovered", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "recovered" {
		t.Errorf("expected 'recovered', got %q", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoWithResultStopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", &transientErr{retryable: false}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent error must not be retried, got %d calls", calls)
	}
}

func TestDoWithResultPlainErrorIsPermanent(t *testing.T) {
	calls := 0
	_, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoWithResultExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", &transientErr{retryable: true}
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 4 {
		t.Errorf("expected 4 calls (1 + 3 retries), got %d", calls)
	}
}

func TestDoWithResultRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &Config{
		MaxRetries:   5,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}

	_, err := DoWithResult(ctx, cfg, func() (string, error) {
		return "", &transientErr{retryable: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil error must not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error must not be retryable")
	}
	if !IsRetryable(&transientErr{retryable: true}) {
		t.Error("expected retryable")
	}
}
