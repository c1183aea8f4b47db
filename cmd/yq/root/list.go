package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"yuquest/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.TaskRepo().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			shown := 0
			for _, t := range tasks {
				if !all && t.Status == "completed" {
					continue
				}
				xp := fmt.Sprintf("%d XP", t.BaseXP)
				if t.Status == "completed" {
					xp = fmt.Sprintf("+%d XP", t.EarnedXP)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-12s %s %s\n",
					t.ID, ui.StatusText(t.Status), t.Title, ui.Muted.Render(xp))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tasks. Add one with: yq add <title>"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")

	return cmd
}
