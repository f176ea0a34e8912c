package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/sarifpatch/internal/ui/pretty"
	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

// TextReporter lists fixed copies per run, followed by warnings.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *adapter.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No SARIF results."))
		}
		return 0, nil
	}

	for _, group := range groupByRun(result.Files) {
		fmt.Fprintln(r.bw, r.styles.FormatRunHeader(group[0].Run, len(group)))
		for _, f := range group {
			fmt.Fprint(r.bw, r.styles.FormatOutcome(f, displayPath(f.Target, r.opts.WorkingDir)))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowWarnings && len(result.Warnings) > 0 {
		fmt.Fprintln(r.bw, r.styles.Bold.Render("Warnings"))
		for _, w := range result.Warnings {
			fmt.Fprint(r.bw, r.styles.FormatWarning(w))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats()))
	}

	return len(result.Files), nil
}

// groupByRun splits files into consecutive groups sharing a run index.
func groupByRun(files []adapter.FileOutcome) [][]adapter.FileOutcome {
	var groups [][]adapter.FileOutcome
	for i, f := range files {
		if i == 0 || files[i-1].Run != f.Run {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], f)
	}
	return groups
}
