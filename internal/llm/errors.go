package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates the provider is down or unreachable.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generator unavailable: %v", e.Err)
	}
	return "generator unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidOutput indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidOutput struct {
	Text string
	Err  error
}

func (e *ErrInvalidOutput) Error() string {
	return fmt.Sprintf("invalid generator output: %v", e.Err)
}

func (e *ErrInvalidOutput) Unwrap() error { return e.Err }

// ErrTruncated indicates the response hit the MaxTokens limit.
type ErrTruncated struct {
	Text string
}

func (e *ErrTruncated) Error() string {
	return "generator output truncated: max tokens exceeded"
}
