// Package cin7 provides a resilient client for the Cin7 Omni REST API.
package cin7

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
)

// Defaults for the live API.
const (
	DefaultBaseURL = "https://api.cin7.com/api/v1"
	DefaultTimeout = 30 * time.Second

	// errorBodyLimit bounds how much of an error body is kept for logs.
	errorBodyLimit = 300
)

// Config holds Cin7 API configuration.
type Config struct {
	BaseURL  string
	Username string
	APIKey   string
	Retry    service.RetryPolicy
	Breaker  BreakerConfig
	Timeout  time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: cin7 username is required", common.ErrMissingConfig)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: cin7 API key is required", common.ErrMissingConfig)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: cin7 base URL must be an absolute http(s) URL", common.ErrInvalidConfig)
		}
	}
	if c.Retry.MaxAttempts < 0 || c.Retry.BaseDelay < 0 {
		return fmt.Errorf("%w: retry policy must not be negative", common.ErrInvalidConfig)
	}
	return nil
}

// Client implements service.OrderAPI against Cin7.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	breaker    *breaker
	sleep      common.Sleeper
	baseURL    string
	username   string
	apiKey     string
	policy     service.RetryPolicy
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSleeper replaces the backoff sleep so tests can run on a fast clock.
func WithSleeper(sleep common.Sleeper) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new Cin7 client with the given configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	policy := cfg.Retry
	if policy.MaxAttempts == 0 {
		policy = service.DefaultRetryPolicy()
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		policy:   policy,
		sleep:    common.SleepWithContext,
		logger:   slog.Default().With("component", "cin7"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.breaker = newBreaker("cin7", cfg.Breaker, c.logger)

	return c, nil
}

// Get fetches path and returns the raw JSON body of the first 200 response.
// Failures are all-or-nothing: no data is returned unless a call succeeded.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := c.url(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body json.RawMessage
	var lastErr error
	err := c.breaker.execute(func() error {
		return common.WithRetry(ctx, c.policy, c.sleep, func(attempt int) error {
			data, err := c.getOnce(ctx, endpoint)
			if err != nil {
				lastErr = err
				c.logger.Debug("Cin7 GET attempt failed", "path", path, "attempt", attempt, "error", err)
				return err
			}
			body = data
			return nil
		})
	})
	if err != nil {
		reason := failureReason(err, lastErr)
		c.logger.Error("Cin7 GET failed",
			"path", path,
			"max_attempts", c.policy.MaxAttempts,
			"error", common.Truncate(reason, errorBodyLimit))
		return nil, fmt.Errorf("cin7 GET %s: %w", path, err)
	}

	return body, nil
}

// Put sends body to path. Single objects are wrapped in a one-element
// array because Cin7 only accepts arrays on update.
// A 2xx response can still carry a per-item failure, which is reported
// without retrying.
func (c *Client) Put(ctx context.Context, path string, body any) service.PutResult {
	payload, err := json.Marshal(wrapPayload(body))
	if err != nil {
		return service.PutResult{Error: fmt.Sprintf("encode payload: %v", err)}
	}

	endpoint := c.url(path)
	var result service.PutResult
	var lastErr error
	err = c.breaker.execute(func() error {
		return common.WithRetry(ctx, c.policy, c.sleep, func(attempt int) error {
			res, err := c.putOnce(ctx, endpoint, payload)
			if err != nil {
				lastErr = err
				c.logger.Debug("Cin7 PUT attempt failed", "path", path, "attempt", attempt, "error", err)
				return err
			}
			result = res
			return nil
		})
	})
	if err != nil {
		reason := failureReason(err, lastErr)
		c.logger.Error("Cin7 PUT failed",
			"path", path,
			"max_attempts", c.policy.MaxAttempts,
			"error", common.Truncate(reason, errorBodyLimit))
		return service.PutResult{Error: reason}
	}

	return result
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, common.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.SetBasicAuth(c.username, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) getOnce(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if !json.Valid(data) {
			return nil, errors.New("invalid JSON in response body")
		}
		return data, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w (HTTP 429)", common.ErrRateLimit)
	default:
		return nil, statusError(resp.StatusCode, data)
	}
}

func (c *Client) putOnce(ctx context.Context, endpoint string, payload []byte) (service.PutResult, error) {
	req, err := c.newRequest(ctx, http.MethodPut, endpoint, payload)
	if err != nil {
		return service.PutResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return service.PutResult{}, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		if err != nil {
			// The status code is authoritative when the body is unreadable.
			return service.PutResult{Success: true}, nil
		}
		return interpretPutResponse(data), nil
	case http.StatusTooManyRequests:
		return service.PutResult{}, fmt.Errorf("%w (HTTP 429)", common.ErrRateLimit)
	default:
		return service.PutResult{}, statusError(resp.StatusCode, data)
	}
}

func statusError(code int, body []byte) error {
	return fmt.Errorf("HTTP %d: %s", code, common.Truncate(string(body), errorBodyLimit))
}

// transportError classifies a failed round trip. Caller cancellation is
// permanent; timeouts and connection failures are retried.
func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return common.Permanent(fmt.Errorf("request canceled: %w", ctx.Err()))
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return fmt.Errorf("connection error: %w", err)
}

// failureReason picks the message surfaced to callers: the last attempt's
// error when there was one, otherwise the wrapper error itself.
func failureReason(err, lastErr error) string {
	if errors.Is(err, common.ErrCircuitOpen) {
		return common.ErrCircuitOpen.Error()
	}
	if lastErr != nil {
		return lastErr.Error()
	}
	return err.Error()
}

// BreakerState reports the circuit breaker state: closed, open, half-open
// or disabled.
func (c *Client) BreakerState() string {
	return c.breaker.state()
}
