package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

// Table formatting constants.
const (
	changedSymbol      = "+"
	tablePadding       = 2
	tableColumnCount   = 6 // FILE, RUN, LANG, APPLIED, SKIPPED, COPY
	changedColumnWidth = 3
	minFileWidth       = 20
	minRunWidth        = 3
	minLangWidth       = 8
	minCountWidth      = 7
	minCopyWidth       = 30
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
)

// TableRow represents a single fixed file in the table.
type TableRow struct {
	File     string
	Run      int
	Language string
	Applied  int
	Skipped  int
	Copy     string
	Changed  bool
}

// OutcomeToTableRow converts a file outcome to a table row. display
// replaces the target path when not empty.
func OutcomeToTableRow(f adapter.FileOutcome, display string) TableRow {
	if display == "" {
		display = f.Target
	}
	return TableRow{
		File:     display,
		Run:      f.Run,
		Language: f.Language,
		Applied:  f.Applied,
		Skipped:  f.Skipped + f.Dropped,
		Copy:     f.Fixed,
		Changed:  f.Changed,
	}
}

// TableFormatter formats fixed files as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file int
	run  int
	lang int
	copy int
}

// FormatTable formats rows as a table, separating runs with a light rule.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if i > 0 && rows[i-1].Run != row.Run {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file: minFileWidth,
		run:  minRunWidth,
		lang: minLangWidth,
		copy: minCopyWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.run = max(widths.run, len(strconv.Itoa(row.Run)))
		widths.lang = max(widths.lang, len(row.Language))
		widths.copy = max(widths.copy, len(row.Copy))
	}

	// The copy path is the least useful column, so it shrinks first.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.copy = max(minCopyWidth, widths.copy-(total-t.termWidth))

		if total = t.calculateTotalWidth(widths); total > t.termWidth {
			widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
		}
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.run + widths.lang + 2*minCountWidth + widths.copy +
		(tablePadding * tableColumnCount) + changedColumnWidth
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %-*s  %*s  %*s  %-*s   ",
		widths.file, "FILE",
		widths.run, "RUN",
		widths.lang, "LANG",
		minCountWidth, "APPLIED",
		minCountWidth, "SKIPPED",
		widths.copy, "COPY",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	changed := " "
	if row.Changed {
		changed = t.styles.TableChanged.Render(changedSymbol)
	}

	content := fmt.Sprintf(" %-*s  %*d  %-*s  %*d  %*d  %-*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.run, row.Run,
		widths.lang, truncateString(row.Language, widths.lang),
		minCountWidth, row.Applied,
		minCountWidth, row.Skipped,
		widths.copy, truncateFilePath(row.Copy, widths.copy),
		changed,
	)

	return t.rowStyle(row).Render(content)
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	switch {
	case row.Skipped > 0:
		return t.styles.TableSkipped
	case !row.Changed:
		return t.styles.TableUnchanged
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = content changed", changedSymbol),
		)
	}

	skippedSample := t.styles.TableSkipped.Render(" skipped fixes ")
	unchangedSample := t.styles.TableUnchanged.Render(" unchanged ")
	changedSample := t.styles.TableChanged.Render(changedSymbol)

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s = content changed",
			skippedSample, unchangedSample, changedSample),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats adapter.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s fixed", stats.Files, plural(stats.Files, wordFile, wordFiles))}

	if stats.Applied > 0 {
		parts = append(parts, t.styles.TableChanged.Render(fmt.Sprintf("%d applied", stats.Applied)))
	}
	if skipped := stats.Skipped + stats.Dropped; skipped > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d skipped", skipped)))
	}
	if stats.Warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
