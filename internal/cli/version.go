package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata injected via -ldflags.
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// NewVersionCommand prints build metadata.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\n", buildVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", buildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Build commit: %s\n", buildCommit)
		},
	}
}
