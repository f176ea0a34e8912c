// Package main is the entry point for the sarifpatch CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/sarifpatch/internal/cli"
	"github.com/yaklabco/sarifpatch/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrFixesSkipped only selects the exit code; the report already said why.
		if !errors.Is(err, cli.ErrFixesSkipped) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
