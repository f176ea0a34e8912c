package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/sarifpatch/internal/ui/pretty"
	"github.com/yaklabco/sarifpatch/pkg/adapter"
	"github.com/yaklabco/sarifpatch/pkg/fix"
)

// DiffReporter formats results as unified diffs in GitHub style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. Only the last run's copy of each target is
// shown, since it supersedes earlier copies at the same path.
func (r *DiffReporter) Report(_ context.Context, result *adapter.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, f := range latestPerTarget(result.Files) {
		if !f.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += f.Diff.Additions
		totalDeletions += f.Diff.Deletions
		r.writeDiff(f.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// latestPerTarget keeps the last outcome of every target, in first-seen order.
func latestPerTarget(files []adapter.FileOutcome) []adapter.FileOutcome {
	index := make(map[string]int, len(files))
	var out []adapter.FileOutcome
	for _, f := range files {
		if i, ok := index[f.Target]; ok {
			out[i] = f
			continue
		}
		index[f.Target] = len(out)
		out = append(out, f)
	}
	return out
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(diff.GitHeader()))

	for _, line := range strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
}

func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
