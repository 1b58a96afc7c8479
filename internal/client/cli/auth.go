package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/streakkeeper/internal/client/tokens"
	"github.com/spf13/cobra"
)

func newRegisterCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Long: `Create an account. Usernames are 3 to 20 letters, digits or
underscores; passwords are at least 8 characters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			password, err := app.readSecret(cmd.OutOrStdout(), "Password: ")
			if err != nil {
				return err
			}
			confirm, err := app.readSecret(cmd.OutOrStdout(), "Repeat password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()
			if err := app.client.Register(ctx, username, password); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run 'streakkeeper login %s' to start.\n", username, username)
			return nil
		},
	}
}

func newLoginCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			password, err := app.readSecret(cmd.OutOrStdout(), "Password: ")
			if err != nil {
				return err
			}

			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			// Drop the old session first so the token listener does not write
			// the new pair under the previous username.
			app.session = nil
			p, err := app.client.Login(ctx, username, password)
			if err != nil {
				return err
			}

			app.session = &tokens.Session{Username: username, AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
			if err := app.store.Save(app.session); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.store.Delete(); err != nil {
				return err
			}
			app.session = nil
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
