package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", config.MaxRetries)
	}

	if config.InitialInterval != 1*time.Second {
		t.Errorf("InitialInterval = %v, want 1s", config.InitialInterval)
	}

	if config.MaxInterval != 30*time.Second {
		t.Errorf("MaxInterval = %v, want 30s", config.MaxInterval)
	}

	if config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %f, want 2.0", config.Multiplier)
	}
}

func TestNew_WithNilConfig(t *testing.T) {
	retrier := New(nil)
	if retrier == nil {
		t.Fatal("New(nil) returned nil")
	}

	if retrier.config.InitialInterval != 1*time.Second {
		t.Errorf("Default InitialInterval = %v, want 1s", retrier.config.InitialInterval)
	}
}

func TestDo_SuccessFirstAttempt(t *testing.T) {
	retrier := New(&Config{MaxRetries: 3, InitialInterval: time.Millisecond})

	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if result.Err != nil {
		t.Fatalf("Do() error = %v", result.Err)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1", calls)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	retrier := New(&Config{MaxRetries: 3, InitialInterval: time.Millisecond, JitterFactor: 0})

	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if result.Err != nil {
		t.Fatalf("Do() error = %v", result.Err)
	}
	if result.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", result.Attempts)
	}
}

func TestDo_MaxRetriesExceeded(t *testing.T) {
	retrier := New(&Config{MaxRetries: 2, InitialInterval: time.Millisecond, JitterFactor: 0})

	sentinel := errors.New("always fails")
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	if !errors.Is(result.Err, ErrMaxRetriesExceeded) {
		t.Errorf("Err = %v, want ErrMaxRetriesExceeded", result.Err)
	}
	if !errors.Is(result.LastError, sentinel) {
		t.Errorf("LastError = %v, want %v", result.LastError, sentinel)
	}
	if result.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3 (initial + 2 retries)", result.Attempts)
	}
}

func TestDo_PermanentErrorStopsRetries(t *testing.T) {
	retrier := New(&Config{MaxRetries: 5, InitialInterval: time.Millisecond})

	sentinel := errors.New("bad config")
	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(sentinel)
	})

	if !errors.Is(result.Err, sentinel) {
		t.Errorf("Err = %v, want %v", result.Err, sentinel)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1", calls)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	retrier := New(&Config{MaxRetries: 5, InitialInterval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := retrier.Do(ctx, func(ctx context.Context) error {
		return errors.New("never succeeds")
	})

	if !errors.Is(result.Err, ErrContextCanceled) {
		t.Errorf("Err = %v, want ErrContextCanceled", result.Err)
	}
}
