package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/sarifpatch/pkg/adapter"
	"github.com/yaklabco/sarifpatch/pkg/diag"
)

// FormatWarning formats a processing warning followed by its detail lines.
func (s *Styles) FormatWarning(w diag.Warning) string {
	var builder strings.Builder

	builder.WriteString("  " + s.Warning.Render("warning") + "  ")
	if w.File != "" {
		builder.WriteString(s.FilePath.Render(w.File) + "  ")
	}
	builder.WriteString(w.Message)
	builder.WriteString("  " + s.Kind.Render("("+string(w.Kind)+")"))
	builder.WriteString("\n")

	for _, detail := range w.Details {
		builder.WriteString("      " + s.Detail.Render(detail) + "\n")
	}

	return builder.String()
}

// FormatOutcome formats one fixed file as "target -> copy (language) counts".
// display replaces the target path when not empty.
func (s *Styles) FormatOutcome(f adapter.FileOutcome, display string) string {
	if display == "" {
		display = f.Target
	}

	counts := []string{fmt.Sprintf("%d applied", f.Applied)}
	if f.Dropped > 0 {
		counts = append(counts, s.Warning.Render(fmt.Sprintf("%d dropped", f.Dropped)))
	}
	if f.Skipped > 0 {
		counts = append(counts, s.Warning.Render(fmt.Sprintf("%d skipped", f.Skipped)))
	}
	if !f.Changed {
		counts = append(counts, s.Dim.Render("unchanged"))
	}

	return fmt.Sprintf("  %s %s %s  %s  %s\n",
		s.FilePath.Render(display),
		s.Arrow.Render("->"),
		s.Copy.Render(f.Fixed),
		s.Language.Render("("+f.Language+")"),
		strings.Join(counts, ", "),
	)
}

// FormatRunHeader formats the header that precedes a run's files.
func (s *Styles) FormatRunHeader(run, files int) string {
	return s.Bold.Render(fmt.Sprintf("Run %d", run)) +
		s.Dim.Render(fmt.Sprintf(" (%d %s)", files, plural(files, wordFile, wordFiles)))
}
