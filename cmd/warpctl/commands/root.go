// Package commands implements warpctl's cobra command tree.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root CLI command with every subcommand registered.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "warpctl",
		Short: "warpctl - inspector CLI for a warp scheduler's job config",
		Long: `warpctl reads a warp scheduler's declarative YAML job config and lets
you list, explain, and dry-run its schedule without wiring real job
functions.

Examples:
  warpctl schedule list --config config.yaml
  warpctl schedule explain nightly-report --config config.yaml
  warpctl schedule run --config config.yaml --start 2024-03-01T00:00:00Z --end 2024-03-08T00:00:00Z`,
		Version: version,
	}

	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "path to the YAML config file")

	return rootCmd
}
