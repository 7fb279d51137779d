// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Remote API errors.
	ErrRemoteRejected = errors.New("remote system rejected the request")
	ErrCircuitOpen    = errors.New("remote API unavailable (circuit open)")

	// Board errors.
	ErrInvalidStage   = errors.New("invalid stage")
	ErrOrderNotFound  = errors.New("order not found on board")
	ErrMoveInProgress = errors.New("order already has a move in progress")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsPermanent reports whether err was marked as not worth retrying.
// Caller cancellation always counts as permanent.
func IsPermanent(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var retryableErr *RetryableError
	return errors.As(err, &retryableErr) && !retryableErr.Retryable
}
