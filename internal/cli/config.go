package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifpatch/internal/configloader"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	var format string
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration sarifpatch would use in the current directory,
after merging system, user, project and explicit config files with
SARIFPATCH_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showEnv {
				return printEnvVars(cmd)
			}
			return runConfig(cmd, global, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or toml")
	cmd.Flags().BoolVar(&showEnv, "env", false, "list supported environment variables instead")

	return cmd
}

func runConfig(cmd *cobra.Command, global *globalFlags, format string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(ctx, global, nil)
	if err != nil {
		return err
	}

	var content []byte
	switch format {
	case "yaml", "yml":
		content, err = cfg.ToYAML()
	case "toml":
		content, err = cfg.ToTOML()
	default:
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", errUsage, format)
	}
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(content); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func printEnvVars(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", name, vars[name]); err != nil {
			return fmt.Errorf("write env vars: %w", err)
		}
	}
	return nil
}
