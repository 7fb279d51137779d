package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/cli"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/spf13/cobra"
)

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <order-id> <stage>",
		Short: "Move a job to another workshop stage",
		Long: `Set the Cin7 stage of a kickplate sales order.

The stage may be given in full ("Kickplate - Processing") or by its short
name ("processing", "job complete").`,
		Example: `  kpboard move 12345 processing
  kpboard move 12345 "to collect"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || orderID <= 0 {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			stage, ok := model.ParseStage(args[1])
			if !ok {
				names := make([]string, 0, len(model.Stages()))
				for _, s := range model.Stages() {
					names = append(names, s.Short())
				}
				return fmt.Errorf("%w %q (expected one of: %s)", common.ErrInvalidStage, args[1], strings.Join(names, ", "))
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			svc, err := initBoardService(settings, nil)
			if err != nil {
				return err
			}

			interrupts := cli.NewInterruptHandler(os.Stderr)
			ctx, stop := interrupts.HandleInterrupts(cmd.Context())
			defer stop()

			result := svc.MoveJob(ctx, orderID, stage)
			if interrupts.WasInterrupted() {
				return ctx.Err()
			}
			if !result.Success {
				return fmt.Errorf("%w: %s", common.ErrRemoteRejected, result.Error)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Order #%d moved to %s", orderID, stage.Short())))
			return nil
		},
	}
}
