package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepWithContext sleeps for d but returns early when ctx is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context done: %w", ctx.Err())
	}
}

// BackoffDelay returns the wait before the next attempt.
// Rate-limited attempts wait BaseDelay * attempt * RateLimitMultiplier,
// everything else waits BaseDelay * attempt.
func BackoffDelay(policy service.RetryPolicy, attempt int, rateLimited bool) time.Duration {
	delay := float64(policy.BaseDelay) * float64(attempt)
	if rateLimited {
		delay *= policy.RateLimitMultiplier
	}
	return time.Duration(delay)
}

// WithRetry executes operation until it succeeds, returns a permanent error,
// or policy.MaxAttempts is reached. Attempts are numbered from 1.
func WithRetry(ctx context.Context, policy service.RetryPolicy, sleep Sleeper, operation func(attempt int) error) error {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 3
	}
	if policy.RateLimitMultiplier <= 0 {
		policy.RateLimitMultiplier = 2.0
	}
	if sleep == nil {
		sleep = SleepWithContext
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err := operation(attempt)
		if err == nil {
			return nil
		}

		if IsPermanent(err) {
			var retryableErr *RetryableError
			if errors.As(err, &retryableErr) {
				return retryableErr.Err
			}
			return err
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			break
		}

		delay := BackoffDelay(policy, attempt, errors.Is(err, ErrRateLimit))
		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"delay", delay,
			"error", err)

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, policy.MaxAttempts, lastErr)
}
