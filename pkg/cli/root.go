// Package cli implements the reflectd command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reflectd",
	Short: "reflectd is a rule-driven mock API server",
	Long: `reflectd serves configurable mock endpoints. Each endpoint carries
candidate responses guarded by templated rules; the best-scoring response
is rendered per request and its actions (delays, callbacks, session
stores) are executed.

Mock traffic is served under /mock/, the admin API on its own port.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
