package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/cin7"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/classify"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/config"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/normalize"
	"github.com/spf13/viper"
)

// loadSettings resolves settings from the global viper instance.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if errors.Is(err, common.ErrMissingConfig) {
		return nil, common.NewUserError(
			"Cin7 credentials not found: set CIN7_USERNAME and CIN7_KEY or add them to "+viper.GetString("secrets.path"), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// initBoardService wires the Cin7 client into a board service.
// onPage may be nil.
func initBoardService(settings *config.Settings, onPage board.PageObserver) (*board.Service, error) {
	client, err := cin7.NewClient(settings.Cin7, cin7.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to create Cin7 client: %w", err)
	}

	location, err := classify.LoadLocation(settings.Board.Timezone)
	if err != nil {
		return nil, err
	}

	svc := board.NewService(
		client,
		normalize.New(settings.Links),
		classify.New(location, settings.Board.DueSoonDays),
		board.Config{
			Aggregator: board.AggregatorConfig{
				PageSize: settings.Board.PageSize,
				MaxPages: settings.Board.MaxPages,
				OnPage:   onPage,
			},
		},
	)
	return svc, nil
}
