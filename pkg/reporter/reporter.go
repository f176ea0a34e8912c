// Package reporter renders the outcome of applying SARIF fixes.
package reporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

// Reporter formats and writes adapter results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of fixed files reported and any write error.
	Report(ctx context.Context, result *adapter.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes path relative to workingDir when it lies below it.
// Paths that would need more than two "../" hops keep their absolute form.
func displayPath(path, workingDir string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	if workingDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return path
		}
		workingDir = cwd
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return path
	}
	return rel
}
