package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"yuquest/internal/engine"
	"yuquest/internal/ui"
)

func newYuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yu <interaction>",
		Short: "Interact with Yu (story_choice|task_completion|crystal_resonance|emotional_support)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("interaction kind is required")
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

			grew, err := svc.GrowFromInteraction(ctx, userID, engine.InteractionKind(args[0]))
			if err != nil {
				return err
			}

			st, err := svc.Status(ctx, userID)
			if err != nil {
				return err
			}
			if grew {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Yu grew to level %d\n", ui.IconHeart, st.CompanionLevel)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Yu enjoyed that, but is already keeping pace with you."))
			}
			return nil
		},
	}

	return cmd
}
