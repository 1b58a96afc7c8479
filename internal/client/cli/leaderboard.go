package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLeaderboardCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"top"},
		Short:   "Show users ranked by their best current streak",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			lb, err := app.client.Leaderboard(ctx, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tUSER\tSTREAK")
			for _, e := range lb.Entries {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", e.Rank, e.DisplayName, e.BestCurrentStreak)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			s := lb.Stats
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d habits by %d users, %d checked in today, top streak %d\n",
				s.TotalHabits, s.TrackedUsers, s.ActiveToday, s.TopStreak)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries (0 uses the server default)")
	return cmd
}
