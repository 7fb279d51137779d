package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/cli"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/handler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API over HTTP",
		Long: `Serve the JSON API used by the web board:

  GET  /api/jobs                 every job, grouped by stage
  POST /api/jobs/{id}/stage      move a job, body {"stage": "..."}
  GET  /healthz                  liveness`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			svc, err := initBoardService(settings, nil)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr: settings.Server.Address,
				Handler: handler.NewRouter(svc, handler.RouterOptions{
					AllowedOrigins: settings.Server.AllowedOrigins,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				slog.Info("Board API listening", "address", srv.Addr)
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Serving the workshop board API on "+srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				slog.Info("Shutting down board API")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :5000)")
	_ = viper.BindPFlag("server.address", cmd.Flags().Lookup("addr"))

	return cmd
}
