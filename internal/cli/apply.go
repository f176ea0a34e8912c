package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifpatch/internal/configloader"
	"github.com/yaklabco/sarifpatch/internal/logging"
	"github.com/yaklabco/sarifpatch/pkg/adapter"
	"github.com/yaklabco/sarifpatch/pkg/config"
	"github.com/yaklabco/sarifpatch/pkg/diag"
	"github.com/yaklabco/sarifpatch/pkg/reporter"
	"github.com/yaklabco/sarifpatch/pkg/targets"
)

type applyFlags struct {
	testRoot  string
	baseDir   string
	outputDir string
	format    string
	strict    bool
	keepTemp  bool
	compact   bool
	noSummary bool

	extensions     []string
	excludes       []string
	followSymlinks bool
}

func newApplyCommand(global *globalFlags) *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <report.sarif> [target...]",
		Short: "Apply SARIF fixes to copies of target files",
		Long:  applyLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, global, flags)
		},
	}

	addApplyFlags(cmd, flags)

	return cmd
}

const applyLongDescription = `Apply the fixes recorded in a SARIF report to copies of the target files.

Targets may be files or directories; directories are searched recursively,
skipping hidden entries. Each target is copied into a temporary directory, mirroring its location
under the test root, and the fixes for it are applied to the copy. The
originals are left untouched.

Temporary copies are removed on exit once they have been exported with
--output-dir or rendered with --format diff, unless --keep-temp is set.
Otherwise they are kept and their location is reported.

Examples:
  sarifpatch apply report.sarif src/Main.kt
  sarifpatch apply report.sarif $(git ls-files '*.py') --format diff
  sarifpatch apply report.sarif src/ --ext cs --output-dir fixed/
  sarifpatch apply report.sarif src/Main.kt --test-root . --strict`

func addApplyFlags(cmd *cobra.Command, flags *applyFlags) {
	cmd.Flags().StringVar(&flags.testRoot, "test-root", "",
		"directory copies are laid out relative to (default: enclosing git work tree)")
	cmd.Flags().StringVar(&flags.baseDir, "base-dir", "",
		"directory for resolving relative SARIF paths (default: the report's directory)")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "export fixed files into this directory")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, diff")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 when any fix is skipped or dropped")
	cmd.Flags().BoolVar(&flags.keepTemp, "keep-temp", false, "keep the temporary directory")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil,
		"only take files with these extensions from target directories (e.g. kt,py)")
	cmd.Flags().StringSliceVar(&flags.excludes, "exclude", nil, "glob patterns to skip in target directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
}

// cliConfig collects the flags the user set explicitly.
func (f *applyFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("test-root") {
		cfg.TestRoot = f.testRoot
	}
	if changed("base-dir") {
		cfg.BaseDir = f.baseDir
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("strict") {
		cfg.Strict = config.Bool(f.strict)
	}
	if changed("keep-temp") {
		cfg.KeepTemp = config.Bool(f.keepTemp)
	}
	return cfg
}

func runApply(cmd *cobra.Command, args []string, global *globalFlags, flags *applyFlags) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := flags.cliConfig(cmd)
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(global.color)
	}

	cfg, err := resolveConfig(ctx, global, cliCfg)
	if err != nil {
		return err
	}

	ctx = logging.WithFields(ctx, logging.FieldFormat, cfg.Format)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	// Reporters that list warnings get them from the result; the others
	// surface them through the log.
	var sink diag.Sink
	if format == reporter.FormatText || format == reporter.FormatTable {
		sink = diag.Discard
	}

	targetFiles, err := targets.Expand(ctx, targets.Options{
		Paths:          args[1:],
		Extensions:     flags.extensions,
		ExcludeGlobs:   flags.excludes,
		FollowSymlinks: flags.followSymlinks,
	})
	if err != nil {
		return fmt.Errorf("expand targets: %w", err)
	}
	logger.Debug("expanded targets", logging.FieldCount, len(targetFiles))

	fixer, err := adapter.New(adapter.Options{
		SARIFPath:   args[0],
		TargetFiles: targetFiles,
		TestRoot:    cfg.TestRoot,
		BaseDir:     cfg.BaseDir,
		TempPrefix:  cfg.TempPrefix,
		Sink:        sink,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	result, err := fixer.Process(ctx)
	if err != nil {
		return errors.Join(err, fixer.Cleanup())
	}

	defer func() {
		if !shouldCleanup(cfg, format) {
			if dir := fixer.TempDir(); dir != "" {
				logger.Info("fixed copies kept", logging.FieldTempDir, dir)
			}
			return
		}
		if cleanupErr := fixer.Cleanup(); cleanupErr != nil {
			err = errors.Join(err, cleanupErr)
		}
	}()

	var exported []string
	if cfg.OutputDir != "" {
		exported, err = fixer.Export(ctx, result, cfg.OutputDir)
		if err != nil {
			return err
		}
		logger.Info("exported fixed files", logging.FieldPath, cfg.OutputDir, logging.FieldCount, len(exported))
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        string(cfg.Color),
		ShowSummary:  !flags.noSummary,
		ShowWarnings: true,
		Compact:      flags.compact,
		WorkingDir:   workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromStats(result.Stats(), cfg.StrictEnabled()) != ExitSuccess {
		return ErrFixesSkipped
	}

	return nil
}

// shouldCleanup reports whether the temporary copies have served their purpose.
func shouldCleanup(cfg *config.Config, format reporter.Format) bool {
	if cfg.KeepTempEnabled() {
		return false
	}
	return cfg.OutputDir != "" || format == reporter.FormatDiff
}

// resolveConfig loads configuration and applies its log level.
func resolveConfig(ctx context.Context, global *globalFlags, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	cfg := loadResult.Config
	if !global.debug {
		logging.SetLevel(cfg.LogLevel)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	if loadResult.RepositoryRoot != "" {
		logger.Debug("test root defaults to repository root", logging.FieldTestRoot, loadResult.RepositoryRoot)
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldTestRoot, cfg.TestRoot,
		logging.FieldBaseDir, cfg.BaseDir,
	)

	return cfg, nil
}
