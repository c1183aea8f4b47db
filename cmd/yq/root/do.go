package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"yuquest/internal/engine"
	"yuquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	var mood int
	var actual int64
	var assist float64

	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete an in-progress task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
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

			id, _ := strconv.ParseInt(args[0], 10, 64)
			in := engine.CompleteTaskInput{
				MoodScore:        mood,
				AssistMultiplier: assist,
			}
			if actual > 0 {
				in.ActualMinutes = &actual
			}

			res, err := svc.CompleteTask(ctx, userID, id, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconDone, "Task completed"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP earned", res.XPEarned))
			b := res.Breakdown
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf(
				"base %d · mood ×%.2f · assist ×%.2f · time +%.2f · priority +%.2f",
				b.BaseXP, b.MoodCoefficient, b.AssistMultiplier, b.TimeBonus, b.PriorityBonus,
			)))
			p := res.Progression.Player
			if p.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s level %d → %d\n", ui.BadgeLevelUp, p.OldLevel, p.NewLevel)
			}
			if res.Progression.CompanionGrew {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Yu grew to level %d\n", ui.IconHeart, res.Progression.CompanionLevel)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&mood, "mood", "m", 3, "Mood at completion (1-5)")
	cmd.Flags().Int64Var(&actual, "minutes", 0, "Actual duration in minutes")
	cmd.Flags().Float64Var(&assist, "assist", 1.0, "Assist multiplier (>= 1.0)")

	return cmd
}
