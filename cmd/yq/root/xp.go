package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"yuquest/internal/ui"
)

func newXPCmd() *cobra.Command {
	var reason string
	var simulate bool

	cmd := &cobra.Command{
		Use:   "xp <amount>",
		Short: "Grant XP directly (or preview with --simulate)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("amount is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("amount must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			amount, _ := strconv.Atoi(args[0])

			if simulate {
				res, err := svc.SimulateXP(ctx, userID, amount)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s +%d XP would take level %d → %d\n",
					ui.IconSparkle, amount, res.OldLevel, res.NewLevel)
				return nil
			}

			res, err := svc.AddPlayerXP(ctx, userID, amount, reason)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(res.SystemEvent.Message))
			if res.Player.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s level %d → %d\n", ui.BadgeLevelUp, res.Player.OldLevel, res.Player.NewLevel)
				for _, r := range res.Player.Rewards {
					fmt.Fprintf(cmd.OutOrStdout(), "- level %d: %s\n", r.Level, string(r.Kind))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "manual", "Reason tag for the XP grant")
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Preview without applying")

	return cmd
}
