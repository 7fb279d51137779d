package main

import (
	"github.com/DJCELL1/KP-Workshop-Tool/internal/tui"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/tui/themes"
	"github.com/spf13/cobra"
)

func boardCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive workshop board",
		Long: `Open the terminal workshop board. Jobs are shown in four stage
columns; move the cursor with the arrow keys or hjkl and shift a job to
the neighbouring stage with H and L. The board refreshes itself.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			svc, err := initBoardService(settings, nil)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(),
				tui.WithService(svc),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithRefreshInterval(settings.Board.RefreshInterval),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin-mocha)")

	return cmd
}
