// Package cli provides the Cobra command structure for sarifpatch.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifpatch/internal/logging"
)

var (
	// errUsage marks errors caused by invalid arguments or flags.
	errUsage = errors.New("invalid usage")

	// errConfig marks errors raised while resolving configuration.
	errConfig = errors.New("failed to load configuration")
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root sarifpatch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "sarifpatch",
		Short: "Apply the fixes recorded in SARIF reports to copies of source files",
		Long: `sarifpatch reads a SARIF 2.1.0 report, collects the fixes its results
propose, and applies them to temporary copies of the files you name.

Originals are never modified. Overlapping fixes are dropped, fixes that
fall outside the file are skipped, and every such decision is reported.
Use --output-dir to export the fixed copies, or --format diff to review
the changes as a unified diff.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newApplyCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
