package openai

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/filechat"
)

// DefaultRetryDelays returns the backoff delays for upload retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// WithRetryDelays sets the backoff between upload attempts. An empty slice
// disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// retryable reports whether err may succeed on a later attempt. Internal
// errors (5xx, 429, transport failures) qualify, and so does a single
// request running past its own timeout. Nothing is retried once ctx is done.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return filechat.ErrorCode(err) == filechat.EINTERNAL
}

// withRetry calls fn until it succeeds or fails permanently, waiting
// delays[i] before attempt i+2.
func withRetry[T any](ctx context.Context, delays []time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var (
		zero    T
		lastErr error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(ctx, err) {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return zero, lastErr
}
