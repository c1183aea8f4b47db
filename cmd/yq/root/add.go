package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"yuquest/internal/engine"
	"yuquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var diff int
	var priority string
	var estimate int64
	var attrs []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			in := engine.CreateTaskInput{
				Title:      args[0],
				Category:   engine.TaskCategory(category),
				Difficulty: engine.Difficulty(diff),
				Priority:   engine.Priority(priority),
			}
			if estimate > 0 {
				in.EstimatedMinutes = &estimate
			}
			for _, a := range attrs {
				in.Attributes = append(in.Attributes, engine.CrystalAttribute(a))
			}

			t, err := svc.CreateTask(ctx, userID, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Task created"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", t.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", t.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Base XP", t.BaseXP))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "one_shot", "Category (routine|one_shot|skill_up|social)")
	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Difficulty (1-5)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high|urgent)")
	cmd.Flags().Int64VarP(&estimate, "minutes", "m", 0, "Estimated duration in minutes")
	cmd.Flags().StringSliceVarP(&attrs, "attr", "a", nil, "Crystal attribute tags")

	return cmd
}
