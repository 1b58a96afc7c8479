package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Server     string
	Timeout    time.Duration
}

// NewRootCommand creates the root command for the streakkeeper CLI.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{}
	app := &App{deps: deps, stdin: deps.Stdin}

	cmd := &cobra.Command{
		Use:           "streakkeeper",
		Short:         "Track daily habit streaks",
		Long:          "Command-line client for the streakkeeper habit-streak tracker.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.ConfigFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerEndpointAddr = opts.Server
			}
			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = opts.Timeout
			}
			return app.init(cfg)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.close()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to a JSON config file")
	cmd.PersistentFlags().StringVarP(&opts.Server, "server", "a", "", "server gRPC address (host:port)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "per-command request timeout")

	cmd.AddCommand(newPingCommand(app))
	cmd.AddCommand(newRegisterCommand(app))
	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newHabitsCommand(app))
	cmd.AddCommand(newCheckInCommand(app))
	cmd.AddCommand(newLeaderboardCommand(app))

	return cmd
}

func newPingCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()
			if err := app.client.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}
