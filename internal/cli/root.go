// Package cli provides the Cobra command structure for mdsync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsync/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions carries global flag values shared by subcommands.
type rootOptions struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root mdsync command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mdsync",
		Short: "Inspect line↔position maps for Markdown preview scroll-sync",
		Long: `mdsync builds the bidirectional map between Markdown source lines and
rendered preview positions used for editor/preview scroll synchronization.

It renders a file into a measured block tree, builds the line map over it,
and exposes the map for inspection: print the full block table, or resolve
a single line to its pixel offset and back.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "",
		"colorize output: auto, always, never (overrides config)")

	// Add subcommands.
	rootCmd.AddCommand(newMapCommand(opts))
	rootCmd.AddCommand(newResolveCommand(opts))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
