package tui

import (
	"context"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/tui/themes"
)

// BoardService is what the terminal board needs from the board package.
type BoardService interface {
	FetchBoard(ctx context.Context) board.Board
	MoveJob(ctx context.Context, orderID int64, stage model.Stage) board.TransitionResult
}

// Config holds TUI configuration.
type Config struct {
	Theme           themes.Theme
	Service         BoardService
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
	Width           int
	Height          int
	ShowHelp        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:           themes.Default,
		RefreshInterval: 3 * time.Minute,
		RequestTimeout:  5 * time.Minute,
		Width:           120,
		Height:          32,
		ShowHelp:        true,
	}
}

// WithService sets the board service.
func WithService(svc BoardService) Option {
	return func(c *Config) {
		c.Service = svc
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithRefreshInterval sets how often the board reloads. Zero disables it.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Config) {
		c.RefreshInterval = d
	}
}
