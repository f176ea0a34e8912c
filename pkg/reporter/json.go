package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string        `json:"version"`
	SARIF    string        `json:"sarif"`
	TempDir  string        `json:"tempDir,omitempty"`
	Files    []JSONFile    `json:"files"`
	Warnings []JSONWarning `json:"warnings"`
	Summary  JSONSummary   `json:"summary"`
}

// JSONFile represents one fixed copy.
type JSONFile struct {
	Run          int    `json:"run"`
	URI          string `json:"uri"`
	Target       string `json:"target"`
	Fixed        string `json:"fixed"`
	Language     string `json:"language"`
	Applied      int    `json:"applied"`
	Skipped      int    `json:"skipped"`
	Dropped      int    `json:"dropped"`
	Changed      bool   `json:"changed"`
	OriginalHash string `json:"originalHash"`
	FixedHash    string `json:"fixedHash"`
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
}

// JSONWarning represents a processing warning.
type JSONWarning struct {
	Kind    string   `json:"kind"`
	Run     int      `json:"run"`
	File    string   `json:"file,omitempty"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Runs         int            `json:"runs"`
	FilesFixed   int            `json:"filesFixed"`
	FilesChanged int            `json:"filesChanged"`
	Applied      int            `json:"applied"`
	Skipped      int            `json:"skipped"`
	Dropped      int            `json:"dropped"`
	Warnings     int            `json:"warnings"`
	ByKind       map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *adapter.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFixed, nil
}

func buildJSONOutput(result *adapter.Result) *JSONOutput {
	output := &JSONOutput{
		Version:  "1.0.0",
		Files:    make([]JSONFile, 0),
		Warnings: make([]JSONWarning, 0),
		Summary: JSONSummary{
			ByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.SARIF = result.SARIFPath
	output.TempDir = result.TempDir

	for _, f := range result.Files {
		file := JSONFile{
			Run:          f.Run,
			URI:          f.SARIFPath,
			Target:       f.Target,
			Fixed:        f.Fixed,
			Language:     f.Language,
			Applied:      f.Applied,
			Skipped:      f.Skipped,
			Dropped:      f.Dropped,
			Changed:      f.Changed,
			OriginalHash: fmt.Sprintf("%016x", f.OriginalHash),
			FixedHash:    fmt.Sprintf("%016x", f.FixedHash),
		}
		if f.Diff != nil {
			file.Additions = f.Diff.Additions
			file.Deletions = f.Diff.Deletions
		}
		output.Files = append(output.Files, file)
	}

	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, JSONWarning{
			Kind:    string(w.Kind),
			Run:     w.Run,
			File:    w.File,
			Message: w.Message,
			Details: w.Details,
		})
		output.Summary.ByKind[string(w.Kind)]++
	}

	stats := result.Stats()
	output.Summary.Runs = result.Runs
	output.Summary.FilesFixed = stats.Files
	output.Summary.FilesChanged = stats.Changed
	output.Summary.Applied = stats.Applied
	output.Summary.Skipped = stats.Skipped
	output.Summary.Dropped = stats.Dropped
	output.Summary.Warnings = stats.Warnings

	return output
}
