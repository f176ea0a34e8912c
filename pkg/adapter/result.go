package adapter

import (
	"github.com/yaklabco/sarifpatch/pkg/diag"
	"github.com/yaklabco/sarifpatch/pkg/fix"
)

// FileOutcome describes one target file whose copy received fixes.
type FileOutcome struct {
	// Run is the index of the SARIF run the fixes came from.
	Run int

	// SARIFPath is the file path as resolved from the SARIF document.
	SARIFPath string

	// Target is the original target file. It is never modified.
	Target string

	// Fixed is the copy the fixes were applied to.
	Fixed string

	Applied int
	Skipped int
	Dropped int

	Language string

	OriginalHash uint64
	FixedHash    uint64
	Changed      bool

	// Diff is nil when the copy is identical to the target.
	Diff *fix.Diff
}

// Result is the outcome of processing one SARIF document.
type Result struct {
	SARIFPath string
	Runs      int
	Files     []FileOutcome
	Warnings  []diag.Warning

	// TempDir holds the fixed copies. Empty when no file was fixed.
	TempDir string
}

// Paths returns the fixed copies in processing order. A file fixed by
// several runs is listed once per run.
func (r *Result) Paths() []string {
	if r == nil {
		return nil
	}
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.Fixed)
	}
	return paths
}

// Stats summarizes a Result.
type Stats struct {
	Files    int
	Changed  int
	Applied  int
	Skipped  int
	Dropped  int
	Warnings int
}

// Stats computes summary counters.
func (r *Result) Stats() Stats {
	var stats Stats
	if r == nil {
		return stats
	}
	for _, f := range r.Files {
		stats.Files++
		if f.Changed {
			stats.Changed++
		}
		stats.Applied += f.Applied
		stats.Skipped += f.Skipped
		stats.Dropped += f.Dropped
	}
	stats.Warnings = len(r.Warnings)
	return stats
}

// HasWarnings reports whether processing produced any warning.
func (r *Result) HasWarnings() bool {
	return r != nil && len(r.Warnings) > 0
}
