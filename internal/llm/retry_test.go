package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Text: `{"ok":true}`},
	)
	g := WithRetry(mock, retryConfig())

	result, err := g.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %s", result.Text)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
		MockResponse{Text: `{"ok":true}`},
	)
	g := WithRetry(mock, retryConfig())

	result, err := g.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %s", result.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
	)
	g := WithRetry(mock, retryConfig())

	_, err := g.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_TruncationNotRetried(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Err: &ErrTruncated{Text: `{}`}},
	)
	g := WithRetry(mock, retryConfig())

	_, err := g.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var trunc *ErrTruncated
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrTruncated, got: %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

func TestRetry_InvalidOutputRetriedOnce(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Err: &ErrInvalidOutput{Text: `bad`, Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidOutput{Text: `bad`, Err: errors.New("bad")}},
		MockResponse{Text: `{"ok":true}`}, // Won't be reached.
	)
	g := WithRetry(mock, retryConfig())

	_, err := g.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	// Should have retried once (2 calls total), then stopped.
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrUnavailable{Err: errors.New("down")}},
		MockResponse{Text: `{"ok":true}`},
	)
	g := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately.

	_, err := g.Generate(ctx, Request{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockGenerator(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Text: `{"ok":true}`},
	)
	g := WithRetry(mock, retryConfig())

	result, err := g.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %s", result.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	mock := NewMockGenerator()
	g := WithRetry(mock, retryConfig())
	if g.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", g.ModelID())
	}
}
