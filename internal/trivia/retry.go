package trivia

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry settings used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     6 * time.Second,
		Multiplier:  2.0,
	}
}

// RetrySource is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetrySource struct {
	inner  Source
	config RetryConfig
}

// WithRetry wraps a Source with retry logic.
func WithRetry(s Source, cfg RetryConfig) Source {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetrySource{inner: s, config: cfg}
}

func (r *RetrySource) RequestSessionToken(ctx context.Context) (string, error) {
	return retry(ctx, r, func() (string, error) {
		return r.inner.RequestSessionToken(ctx)
	})
}

func (r *RetrySource) ListCategories(ctx context.Context) ([]Category, error) {
	return retry(ctx, r, func() ([]Category, error) {
		return r.inner.ListCategories(ctx)
	})
}

func (r *RetrySource) FetchQuestions(ctx context.Context, q Query) ([]Question, error) {
	return retry(ctx, r, func() ([]Question, error) {
		return r.inner.FetchQuestions(ctx, q)
	})
}

func retry[T any](ctx context.Context, r *RetrySource, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		v, err := call()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return zero, err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return zero, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// The query or token is wrong; asking again won't change the answer.
	if errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrTokenExhausted) ||
		errors.Is(err, ErrMalformedResponse) {
		return false
	}

	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetrySource) backoff(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
