package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/sarifpatch/internal/ui/pretty"
	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as a styled table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *adapter.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No fixes applied."))
		}
		r.writeWarnings(result)
		return 0, nil
	}

	rows := make([]pretty.TableRow, 0, len(result.Files))
	for _, f := range result.Files {
		rows = append(rows, pretty.OutcomeToTableRow(f, displayPath(f.Target, r.opts.WorkingDir)))
	}
	fmt.Fprint(r.bw, r.formatter.FormatTable(rows))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats(), ""))
	}

	r.writeWarnings(result)

	return len(result.Files), nil
}

func (r *TableReporter) writeWarnings(result *adapter.Result) {
	if !r.opts.ShowWarnings || !result.HasWarnings() {
		return
	}
	fmt.Fprintln(r.bw)
	for _, w := range result.Warnings {
		fmt.Fprint(r.bw, r.styles.FormatWarning(w))
	}
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
