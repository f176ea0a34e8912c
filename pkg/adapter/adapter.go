// Package adapter applies the fixes of a SARIF document to copies of a set
// of target files.
//
// Processing is sequential: for every run the fixes are extracted, grouped
// by file and filtered for overlaps, then each file that matches a target
// is copied into a private temporary directory and rewritten there. The
// targets themselves are never modified.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/sarifpatch/internal/logging"
	"github.com/yaklabco/sarifpatch/pkg/diag"
	"github.com/yaklabco/sarifpatch/pkg/extract"
	"github.com/yaklabco/sarifpatch/pkg/fix"
	"github.com/yaklabco/sarifpatch/pkg/fsutil"
	"github.com/yaklabco/sarifpatch/pkg/langdetect"
	"github.com/yaklabco/sarifpatch/pkg/sarif"
	"github.com/yaklabco/sarifpatch/pkg/uri"
)

// DefaultTempPrefix prefixes the temporary directory holding fixed copies.
const DefaultTempPrefix = "sarifpatch-"

var (
	// ErrNoSARIF is returned when no SARIF file is configured.
	ErrNoSARIF = errors.New("no SARIF file given")

	// ErrNoTargetFiles is returned when a run proposes replacements but
	// there are no target files to apply them to.
	ErrNoTargetFiles = errors.New("the list of target files is empty")

	// ErrTestRootNotDir is returned when the test root is not a directory.
	ErrTestRootNotDir = errors.New("test root is not a directory")

	// ErrCopyOntoSelf is returned when a target would be copied onto itself.
	ErrCopyOntoSelf = errors.New("refusing to copy a file onto itself")
)

// Options configures an Adapter.
type Options struct {
	// SARIFPath is the SARIF document to read.
	SARIFPath string

	// TargetFiles are the candidate files fixes may be applied to.
	TargetFiles []string

	// TestRoot, when set, is the directory copies are laid out relative to.
	TestRoot string

	// BaseDir resolves relative file paths found in the SARIF document.
	// Defaults to the directory containing SARIFPath.
	BaseDir string

	// TempPrefix prefixes the temporary directory name.
	TempPrefix string

	// FS defaults to the local file system.
	FS fsutil.FileSystem

	// Sink receives warnings in addition to the result. Defaults to a sink
	// logging through Logger.
	Sink diag.Sink

	// Logger defaults to logging.Default().
	Logger *log.Logger
}

// Adapter applies SARIF fixes. It is not safe for concurrent use.
type Adapter struct {
	sarifPath string
	targets   []string
	testRoot  string
	baseDir   string
	prefix    string
	fs        fsutil.FileSystem
	sink      diag.Sink
	logger    *log.Logger

	tempDir string
}

// New validates opts and creates an Adapter.
func New(opts Options) (*Adapter, error) {
	if opts.SARIFPath == "" {
		return nil, ErrNoSARIF
	}

	adapter := &Adapter{
		sarifPath: opts.SARIFPath,
		targets:   append([]string(nil), opts.TargetFiles...),
		prefix:    opts.TempPrefix,
		fs:        opts.FS,
		logger:    opts.Logger,
		sink:      opts.Sink,
	}
	if adapter.prefix == "" {
		adapter.prefix = DefaultTempPrefix
	}
	if adapter.fs == nil {
		adapter.fs = fsutil.NewLocal()
	}
	if adapter.logger == nil {
		adapter.logger = logging.Default()
	}
	if adapter.sink == nil {
		adapter.sink = diag.NewLogSink(adapter.logger)
	}

	if opts.TestRoot != "" {
		isDir, err := adapter.fs.IsDir(opts.TestRoot)
		if err != nil {
			return nil, fmt.Errorf("test root %s: %w", opts.TestRoot, err)
		}
		if !isDir {
			return nil, fmt.Errorf("%w: %s", ErrTestRootNotDir, opts.TestRoot)
		}
		adapter.testRoot, err = adapter.fs.Canonicalize(opts.TestRoot)
		if err != nil {
			return nil, err
		}
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(opts.SARIFPath)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("base directory %s: %w", baseDir, err)
	}
	adapter.baseDir = abs

	return adapter, nil
}

// TempDir returns the directory holding fixed copies, or "" before any file
// has been fixed.
func (a *Adapter) TempDir() string {
	return a.tempDir
}

// Process reads the SARIF document and applies every run's fixes to copies
// of the matching target files. Per-item problems become warnings; I/O
// failures and a missing target list abort processing.
func (a *Adapter) Process(ctx context.Context) (*Result, error) {
	var collector diag.Collector
	sink := diag.Tee(&collector, a.sink)

	a.logger.Info("reading SARIF file", logging.FieldSARIF, a.sarifPath)

	doc, err := sarif.ReadFile(ctx, a.fs, a.sarifPath)
	if err != nil {
		return nil, err
	}

	result := &Result{SARIFPath: a.sarifPath, Runs: len(doc.Runs)}

	for index := range doc.Runs {
		if err := a.processRun(ctx, &doc.Runs[index], index, sink, result); err != nil {
			return nil, err
		}
	}

	result.TempDir = a.tempDir
	result.Warnings = collector.Warnings()

	return result, nil
}

func (a *Adapter) processRun(ctx context.Context, run *sarif.Run, index int, sink diag.Sink, result *Result) error {
	logger := a.logger.With(logging.FieldRun, index)

	entries := extract.Run(run, index, sink)
	if len(entries) == 0 {
		sink.Warn(diag.Warning{
			Kind:    diag.KindNoFixes,
			Run:     index,
			Message: fmt.Sprintf("run %d (%s) has no fix objects", index, run.Tool.Driver.Name),
		})
		return nil
	}

	grouped := extract.GroupByFile(entries)
	if extract.Count(grouped) > 0 && len(a.targets) == 0 {
		return fmt.Errorf("run %d: %w", index, ErrNoTargetFiles)
	}

	logger.Debug("extracted fixes", logging.FieldFiles, len(grouped), logging.FieldCount, extract.Count(grouped))

	for _, fr := range grouped {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("process run %d: %w", index, err)
		}

		filtered := fix.Filter(fr, index, sink)
		if len(filtered.Replacements) == 0 {
			sink.Warn(diag.Warning{
				Kind:    diag.KindNoReplacements,
				Run:     index,
				File:    fr.FilePath,
				Message: "skipping file, because the list of replacements is empty",
			})
			continue
		}

		target := a.matchTarget(logger, index, fr.FilePath, sink)
		if target == "" {
			continue
		}

		outcome, err := a.applyToFile(ctx, logger, index, target, filtered, sink)
		if err != nil {
			return err
		}
		outcome.Dropped = len(fr.Replacements) - len(filtered.Replacements)

		result.Files = append(result.Files, outcome)
	}

	return nil
}

// matchTarget returns the target file that the resolved SARIF path refers
// to, or "" after warning when none does. A failed comparison counts as a
// mismatch.
func (a *Adapter) matchTarget(logger *log.Logger, run int, filePath string, sink diag.Sink) string {
	logger.Info("processing file", logging.FieldPath, filePath)

	local, err := uri.ToLocalPath(filePath)
	if err != nil {
		// A path of another OS family is kept verbatim; it can still match
		// a target given in the same form.
		logger.Debug("using the path as is", logging.FieldPath, filePath, logging.FieldError, err)
		local = filepath.FromSlash(filePath)
	} else if local != filePath {
		logger.Debug("resolved the URI to a local path", logging.FieldPath, local)
	}

	if !filepath.IsAbs(local) {
		local = filepath.Join(a.baseDir, local)
		logger.Debug("converted the path", logging.FieldPath, local, logging.FieldBaseDir, a.baseDir)
	}

	for _, target := range a.targets {
		same, err := a.fs.SameFile(target, local)
		if err != nil {
			logger.Debug("cannot compare with target",
				logging.FieldTarget, target, logging.FieldPath, local, logging.FieldError, err)
			continue
		}
		if same {
			return target
		}
	}

	details := make([]string, len(a.targets))
	for i, target := range a.targets {
		details[i] = fmt.Sprintf("%d of %d: %s", i+1, len(a.targets), target)
	}
	sink.Warn(diag.Warning{
		Kind: diag.KindUnmatchedFile,
		Run:  run,
		File: filePath,
		Message: fmt.Sprintf("none of the %d target file(s) matches the file from SARIF replacement: %s",
			len(a.targets), local),
		Details: details,
	})

	return ""
}

// applyToFile copies target into the temporary directory and applies the
// filtered replacements to the copy.
func (a *Adapter) applyToFile(
	ctx context.Context, logger *log.Logger, run int, target string, filtered fix.FileReplacements, sink diag.Sink,
) (FileOutcome, error) {
	tempDir, err := a.ensureTempDir()
	if err != nil {
		return FileOutcome{}, err
	}

	canonical, err := a.fs.Canonicalize(target)
	if err != nil {
		return FileOutcome{}, err
	}

	copyPath := fsutil.MirrorPath(tempDir, canonical, a.testRoot)
	if err := a.fs.CreateDirectories(ctx, filepath.Dir(copyPath)); err != nil {
		return FileOutcome{}, err
	}

	same, err := a.fs.SameFile(target, copyPath)
	if err != nil {
		return FileOutcome{}, err
	}
	if same {
		return FileOutcome{}, fmt.Errorf("%w: %s", ErrCopyOntoSelf, target)
	}

	if err := a.fs.Copy(ctx, target, copyPath); err != nil {
		return FileOutcome{}, err
	}
	logger.Info("copied", logging.FieldTarget, target, logging.FieldCopy, copyPath)

	original, err := a.fs.ReadLines(ctx, copyPath)
	if err != nil {
		return FileOutcome{}, err
	}
	logger.Debug("read copy", logging.FieldCopy, copyPath, logging.FieldCount, len(original))

	applied := fix.Apply(original, filtered.Replacements, fix.ApplyOptions{
		File: filtered.FilePath,
		Run:  run,
		Sink: sink,
	})

	if err := a.fs.WriteLines(ctx, copyPath, applied.Lines); err != nil {
		return FileOutcome{}, err
	}

	before := []byte(fsutil.JoinLines(original))
	after := []byte(fsutil.JoinLines(applied.Lines))
	display := filepath.ToSlash(fsutil.RelativeToRoot(canonical, a.testRoot))

	outcome := FileOutcome{
		Run:          run,
		SARIFPath:    filtered.FilePath,
		Target:       target,
		Fixed:        copyPath,
		Applied:      len(applied.Applied),
		Skipped:      len(applied.Skipped),
		Language:     langdetect.DetectFile(target, before),
		OriginalHash: fsutil.Fingerprint(before),
		FixedHash:    fsutil.Fingerprint(after),
		Diff:         fix.GenerateDiff(display, original, applied.Lines),
	}
	outcome.Changed = outcome.OriginalHash != outcome.FixedHash

	logger.Info("applied fixes",
		logging.FieldTarget, target,
		logging.FieldApplied, outcome.Applied,
		logging.FieldSkipped, outcome.Skipped,
		logging.FieldLanguage, outcome.Language)

	return outcome, nil
}

func (a *Adapter) ensureTempDir() (string, error) {
	if a.tempDir != "" {
		return a.tempDir, nil
	}

	dir, err := a.fs.CreateTempDirectory(a.prefix)
	if err != nil {
		return "", err
	}
	a.tempDir = dir
	a.logger.Debug("created temporary directory", logging.FieldTempDir, dir)

	return dir, nil
}

// Cleanup removes the temporary directory and every fixed copy in it.
func (a *Adapter) Cleanup() error {
	if a.tempDir == "" {
		return nil
	}
	if err := a.fs.RemoveAll(a.tempDir); err != nil {
		return err
	}
	a.tempDir = ""
	return nil
}
