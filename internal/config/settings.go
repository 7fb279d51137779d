package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/cin7"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/classify"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/normalize"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. KPBOARD_SERVER_ADDRESS.
const EnvPrefix = "KPBOARD"

// Settings is the resolved runtime configuration.
type Settings struct {
	Server ServerSettings
	Cin7   cin7.Config
	Links  normalize.Options
	Board  BoardSettings
}

// BoardSettings controls how the board is fetched and classified.
type BoardSettings struct {
	Timezone        string
	PageSize        int
	MaxPages        int
	DueSoonDays     int
	RefreshInterval time.Duration
}

// ServerSettings controls the HTTP API.
type ServerSettings struct {
	Address        string
	AllowedOrigins []string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	retry := service.DefaultRetryPolicy()
	breaker := cin7.DefaultBreakerConfig()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("secrets.path", DefaultSecretsPath)

	v.SetDefault("cin7.base_url", "")
	v.SetDefault("cin7.timeout", cin7.DefaultTimeout)
	v.SetDefault("cin7.max_attempts", retry.MaxAttempts)
	v.SetDefault("cin7.retry_delay", retry.BaseDelay)
	v.SetDefault("cin7.rate_limit_multiplier", retry.RateLimitMultiplier)
	v.SetDefault("cin7.web_url", normalize.DefaultWebURL)
	v.SetDefault("cin7.customer_apps_link", normalize.DefaultCustomerAppsLink)

	v.SetDefault("breaker.enabled", breaker.Enabled)
	v.SetDefault("breaker.consecutive_failures", breaker.ConsecutiveFailures)
	v.SetDefault("breaker.open_timeout", breaker.OpenTimeout)
	v.SetDefault("breaker.half_open_requests", breaker.HalfOpenRequests)

	v.SetDefault("board.timezone", classify.DefaultTimezone)
	v.SetDefault("board.due_soon_days", classify.DefaultDueSoonDays)
	v.SetDefault("board.page_size", board.DefaultPageSize)
	v.SetDefault("board.max_pages", board.DefaultMaxPages)
	v.SetDefault("board.refresh_interval", 3*time.Minute)

	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// Load resolves settings from v and the credentials file it points to.
// Credentials are required; everything else has a default.
func Load(v *viper.Viper) (*Settings, error) {
	creds, err := LoadCredentials(ExpandPath(v.GetString("secrets.path")))
	if err != nil {
		return nil, err
	}

	baseURL := v.GetString("cin7.base_url")
	if baseURL == "" {
		baseURL = creds.BaseURL
	}

	s := &Settings{
		Cin7: cin7.Config{
			BaseURL:  baseURL,
			Username: creds.Username,
			APIKey:   creds.APIKey,
			Timeout:  v.GetDuration("cin7.timeout"),
			Retry: service.RetryPolicy{
				MaxAttempts:         v.GetInt("cin7.max_attempts"),
				BaseDelay:           v.GetDuration("cin7.retry_delay"),
				RateLimitMultiplier: v.GetFloat64("cin7.rate_limit_multiplier"),
			},
			Breaker: cin7.BreakerConfig{
				Enabled:             v.GetBool("breaker.enabled"),
				ConsecutiveFailures: v.GetUint32("breaker.consecutive_failures"),
				OpenTimeout:         v.GetDuration("breaker.open_timeout"),
				HalfOpenRequests:    v.GetUint32("breaker.half_open_requests"),
			},
		},
		Links: normalize.Options{
			WebURL:           v.GetString("cin7.web_url"),
			CustomerAppsLink: v.GetString("cin7.customer_apps_link"),
		},
		Board: BoardSettings{
			Timezone:        v.GetString("board.timezone"),
			DueSoonDays:     v.GetInt("board.due_soon_days"),
			PageSize:        v.GetInt("board.page_size"),
			MaxPages:        v.GetInt("board.max_pages"),
			RefreshInterval: v.GetDuration("board.refresh_interval"),
		},
		Server: ServerSettings{
			Address:        v.GetString("server.address"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings that have no safe fallback.
func (s *Settings) Validate() error {
	if err := s.Cin7.Validate(); err != nil {
		return err
	}
	if s.Board.PageSize < 1 {
		return fmt.Errorf("%w: board.page_size must be positive", common.ErrInvalidConfig)
	}
	if s.Board.MaxPages < 1 {
		return fmt.Errorf("%w: board.max_pages must be positive", common.ErrInvalidConfig)
	}
	if s.Board.DueSoonDays < 0 {
		return fmt.Errorf("%w: board.due_soon_days must not be negative", common.ErrInvalidConfig)
	}
	if strings.TrimSpace(s.Server.Address) == "" {
		return fmt.Errorf("%w: server.address is required", common.ErrMissingConfig)
	}
	if _, err := classify.LoadLocation(s.Board.Timezone); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return nil
}
