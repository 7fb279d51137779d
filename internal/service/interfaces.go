// Package service defines the interfaces shared between the board packages.
package service

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// RetryPolicy configures how remote calls are retried.
// It is immutable once handed to a client.
type RetryPolicy struct {
	MaxAttempts         int
	BaseDelay           time.Duration
	RateLimitMultiplier float64
}

// DefaultRetryPolicy returns the policy used against the live API.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:         3,
		BaseDelay:           1 * time.Second,
		RateLimitMultiplier: 2.0,
	}
}

// PutResult is the verdict of a PUT call.
type PutResult struct {
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// OrderAPI is the contract of the resilient fetcher.
// Implementations retry internally; a returned error means every attempt failed.
type OrderAPI interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) PutResult
}
