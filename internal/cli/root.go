// Package cli wires the configuration, the store and the front-ends into
// the todolist command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRoot().ExecuteContext(ctx)
}

type rootOptions struct {
	configPath string
	dbPath     string
}

// NewRoot builds the todolist command with all of its subcommands. Run
// without a subcommand it opens the desktop window.
func NewRoot() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "todolist",
		Short:        "Prioritized, categorized to-do list",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontEnd(cmd, opts, runDesktop)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.todolist/config.yaml)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file (overrides database.path)")

	root.AddCommand(
		desktopCmd(opts),
		tuiCmd(opts),
		serveCmd(opts),
		addCmd(opts),
		listCmd(opts),
		deleteCmd(opts),
		moveCmd(opts),
		themeCmd(opts),
	)
	return root
}
