package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/spf13/cobra"
)

func newHabitsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habits",
		Aliases: []string{"habit"},
		Short:   "Manage your habits",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra runs only the nearest PersistentPreRunE, so chain the root.
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return app.requireSession()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with their streaks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			habits, err := app.client.ListHabits(ctx)
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No habits yet. Add one with 'streakkeeper habits add <name>'.")
				return nil
			}
			return printHabits(cmd.OutOrStdout(), habits)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			h, err := app.client.CreateHabit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", h.Name, h.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a habit",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			h, err := app.client.RenameHabit(ctx, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", h.ID, h.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			if err := app.client.DeleteHabit(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func printHabits(w io.Writer, habits []api.Habit) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCURRENT\tLONGEST\tTODAY")
	for _, h := range habits {
		today := "-"
		switch {
		case h.CheckedInToday:
			today = "done"
		case h.Alive:
			today = "due"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", h.ID, h.Name, h.CurrentStreak, h.LongestStreak, today)
	}
	return tw.Flush()
}
