package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/cli"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/handler"
	"github.com/spf13/cobra"
)

func jobsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List kickplate jobs by stage",
		Long: `Fetch every open kickplate order from Cin7 and print it under its
workshop stage, with overdue and due-soon jobs highlighted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			progress := cli.NewPageProgress(os.Stderr)
			svc, err := initBoardService(settings, progress.OnPage)
			if err != nil {
				return err
			}

			b := svc.FetchBoard(cmd.Context())
			progress.Finish()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(handler.NewJobsResponse(b)); err != nil {
					return fmt.Errorf("failed to encode board: %w", err)
				}
			} else {
				fmt.Fprint(out, cli.RenderBoard(b))
				fmt.Fprintln(out, cli.RenderSummary(b))
			}

			if b.Truncated {
				return fmt.Errorf("board is incomplete: Cin7 failed after %d pages (%d orders)", progress.Pages(), progress.Records())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the board as JSON, as served by GET /api/jobs")

	return cmd
}
