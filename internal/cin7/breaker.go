package cin7

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/sony/gobreaker"
)

// BreakerConfig controls the circuit breaker wrapped around whole calls.
// A call only counts as failed once its retries are exhausted.
type BreakerConfig struct {
	Enabled             bool
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	HalfOpenRequests    uint32
}

// DefaultBreakerConfig trips after five exhausted calls in a row.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:             true,
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

type breaker struct {
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

func newBreaker(name string, cfg BreakerConfig, logger *slog.Logger) *breaker {
	if !cfg.Enabled {
		return &breaker{logger: logger}
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = DefaultBreakerConfig().ConsecutiveFailures
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &breaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

// execute runs fn through the breaker. An open breaker rejects the call
// without running fn.
func (b *breaker) execute(fn func() error) error {
	if b == nil || b.cb == nil {
		return fn()
	}

	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		b.logger.Warn("Circuit breaker rejected request", "breaker", b.cb.Name(), "state", b.cb.State().String())
		return fmt.Errorf("%w: %w", common.ErrCircuitOpen, err)
	}
	return err
}

// state reports the breaker state for diagnostics.
func (b *breaker) state() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
