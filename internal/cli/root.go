// Package cli defines Cobra command definitions for the liftlog CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liftlog-dev/liftlog/internal/tui"
	"github.com/liftlog-dev/liftlog/internal/tui/app"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Terminal client for the liftlog training API",
	Long: `Liftlog tracks your workouts from the terminal. Browse exercises
by muscle group, register completed sets to your history, and manage
your account. All data lives on the liftlog server; sign in once and
the session is kept across restarts.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		defer appCtx.Close()

		tuiApp := app.New(appCtx.cfg, appCtx.manager, appCtx.service)
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(eventsCmd)
}
