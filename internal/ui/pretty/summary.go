package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats adapter statistics as a single line.
// Example: "2 files fixed (3 fixes applied, 1 dropped), 1 warning".
func (s *Styles) FormatSummaryOneLine(stats adapter.Stats) string {
	if stats.Files == 0 {
		msg := s.Dim.Render("No fixes applied")
		if stats.Warnings > 0 {
			msg += ", " + s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings")))
		}
		return msg + "\n"
	}

	details := []string{
		fmt.Sprintf("%d %s applied", stats.Applied, plural(stats.Applied, "fix", "fixes")),
	}
	if stats.Dropped > 0 {
		details = append(details, s.Warning.Render(fmt.Sprintf("%d dropped", stats.Dropped)))
	}
	if stats.Skipped > 0 {
		details = append(details, s.Warning.Render(fmt.Sprintf("%d skipped", stats.Skipped)))
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s fixed", stats.Files, plural(stats.Files, wordFile, wordFiles))) +
			" (" + strings.Join(details, ", ") + ")",
	}

	if unchanged := stats.Files - stats.Changed; unchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", unchanged)))
	}
	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats adapter statistics as a summary block.
func (s *Styles) FormatSummary(stats adapter.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files fixed:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Files)) + "\n")
	if stats.Changed > 0 {
		builder.WriteString("  Files changed:     " +
			s.Success.Render(strconv.Itoa(stats.Changed)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Fixes applied:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.Applied)) + "\n")
	if stats.Dropped > 0 {
		builder.WriteString("    Overlapping:     " +
			s.Warning.Render(strconv.Itoa(stats.Dropped)) + "\n")
	}
	if stats.Skipped > 0 {
		builder.WriteString("    Out of range:    " +
			s.Warning.Render(strconv.Itoa(stats.Skipped)) + "\n")
	}
	if stats.Warnings > 0 {
		builder.WriteString("  Warnings:          " +
			s.Warning.Render(strconv.Itoa(stats.Warnings)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.Files == 0:
		builder.WriteString(s.Failure.Render("No fixes applied"))
	case stats.Skipped > 0 || stats.Dropped > 0:
		builder.WriteString(s.Warning.Render("Fixes applied partially"))
	default:
		builder.WriteString(s.Success.Render("All fixes applied"))
	}
	builder.WriteString("\n")

	return builder.String()
}
