package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func testPolicy(attempts int) service.RetryPolicy {
	return service.RetryPolicy{
		MaxAttempts:         attempts,
		BaseDelay:           10 * time.Millisecond,
		RateLimitMultiplier: 2,
	}
}

func TestBackoffDelay(t *testing.T) {
	policy := testPolicy(3)

	tests := []struct {
		name        string
		attempt     int
		rateLimited bool
		want        time.Duration
	}{
		{name: "first failure", attempt: 1, want: 10 * time.Millisecond},
		{name: "second failure", attempt: 2, want: 20 * time.Millisecond},
		{name: "first rate limit", attempt: 1, rateLimited: true, want: 20 * time.Millisecond},
		{name: "third rate limit", attempt: 3, rateLimited: true, want: 60 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BackoffDelay(policy, tt.attempt, tt.rateLimited))
		})
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds first time without sleeping", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		calls := 0
		err := WithRetry(context.Background(), testPolicy(3), sleeper.sleep, func(int) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, sleeper.delays)
	})

	t.Run("linear backoff between generic failures", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		boom := errors.New("HTTP 500: boom")
		err := WithRetry(context.Background(), testPolicy(3), sleeper.sleep, func(int) error {
			return boom
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, sleeper.delays)
	})

	t.Run("rate limits double the delay and still advance attempts", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		var seen []int
		err := WithRetry(context.Background(), testPolicy(4), sleeper.sleep, func(attempt int) error {
			seen = append(seen, attempt)
			if attempt <= 3 {
				return ErrRateLimit
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, seen)
		assert.Equal(t, []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 60 * time.Millisecond}, sleeper.delays)
	})

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		rejected := errors.New("validation failed")
		calls := 0
		err := WithRetry(context.Background(), testPolicy(3), sleeper.sleep, func(int) error {
			calls++
			return Permanent(rejected)
		})
		assert.Equal(t, rejected, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, sleeper.delays)
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, testPolicy(3), nil, func(int) error {
			return errors.New("connection error")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(Permanent(errors.New("x"))))
	assert.True(t, IsPermanent(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.False(t, IsPermanent(ErrRateLimit))
	assert.False(t, IsPermanent(context.DeadlineExceeded))
	assert.False(t, IsPermanent(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsPermanent(errors.New("plain")))
}

func TestUserError(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := NewUserError("Could not reach Cin7", inner)

	assert.Equal(t, "Could not reach Cin7: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "bare", (&UserError{UserMessage: "bare"}).Error())
}
