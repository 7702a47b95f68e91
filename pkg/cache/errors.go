package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/explaintext/pkg/errors"
)

// ErrNetwork marks a failure talking to a remote cache backend.
// Wrapped errors keep it reachable through errors.Is and carry the
// NETWORK_ERROR code.
var ErrNetwork = errors.New(errors.ErrCodeNetwork, "cache backend unreachable")

// RetryableError marks a transient backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return stderrors.As(err, &re)
}

// backoff retries an operation a fixed number of times, doubling the
// delay after each retryable failure.
type backoff struct {
	attempts int
	delay    time.Duration
}

// defaultBackoff keeps a cache lookup under a second when Redis is down;
// tests shorten the delay.
var defaultBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

func (b backoff) run(ctx context.Context, fn func() error) error {
	delay, n := b.delay, max(b.attempts, 1)
	var err error
	for i := range n {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == n-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// RetryWithBackoff runs fn until it succeeds, fails with an error not
// marked Retryable, or has failed three times.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return defaultBackoff.run(ctx, fn)
}
