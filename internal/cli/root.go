// Package cli defines the synckit command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	// ConfigPath points at an optional JSON configuration file merged
	// underneath environment variables.
	ConfigPath string
	// Verbose routes debug-level engine logs to stderr.
	Verbose bool
}

// NewRootCommand creates the root command for the synckit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "synckit",
		Short: "synckit - offline sync engine for the wanderline travel client",
		Long: "synckit keeps a durable local mirror of trips, bookings and posts,\n" +
			"queues mutations made while offline and replays them in order once\n" +
			"connectivity returns.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "JSON config file path")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
