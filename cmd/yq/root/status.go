package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"yuquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player and Yu progression",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Status(ctx, userID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Progression"))
			p := st.Player
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP", fmt.Sprintf("%d (next level at %d, %.0f%%)", p.TotalXP, p.XPForNextLevel, p.ProgressPercentage)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconHeart+" Yu"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", st.CompanionLevel))
			for name, v := range st.CompanionTraits {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s: %.2f\n", name, v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level difference", st.LevelDifference))
			if st.ResonanceAvailable {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render("Resonance available!"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			if len(st.RecentEvents) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconScroll+" Recent events"))
				for _, ev := range st.RecentEvents {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Muted.Render(ev.CreatedAt.Local().Format("01-02 15:04")), ev.Message)
				}
			}
			return nil
		},
	}

	return cmd
}
