package cli

import (
	"fmt"
	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/spf13/cobra"
)

var outcomeMessages = map[string]string{
	api.OutcomeAlreadyDone: "Already checked in today",
	api.OutcomeContinued:   "Streak continued",
	api.OutcomeReset:       "New streak started",
}

func newCheckInCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "checkin <habit-id>",
		Aliases: []string{"check-in", "done"},
		Short:   "Record today's check-in for a habit",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			return app.requireSession()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			res, err := app.client.CheckIn(ctx, args[0])
			if err != nil {
				return err
			}

			msg, ok := outcomeMessages[res.Outcome]
			if !ok {
				msg = res.Outcome
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: current %d, longest %d\n", msg, res.CurrentStreak, res.LongestStreak)
			return nil
		},
	}
}
