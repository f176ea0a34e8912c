// Package fix models SARIF replacements and applies them to line-oriented text.
package fix

import (
	"fmt"
	"strconv"
)

// Region is a deleted region. Lines and columns are 1-based; zero means
// the field was absent in the SARIF document.
type Region struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// HasColumns reports whether both column bounds are present. A region with
// only one bound is treated as covering whole lines.
func (r Region) HasColumns() bool {
	return r.StartColumn > 0 && r.EndColumn > 0
}

// LastLine returns EndLine, or StartLine when EndLine is absent.
func (r Region) LastLine() int {
	if r.EndLine == 0 {
		return r.StartLine
	}
	return r.EndLine
}

// IsMultiLine reports whether the region spans more than one line.
func (r Region) IsMultiLine() bool {
	return r.LastLine() != r.StartLine
}

// Replacement deletes a region and optionally inserts text in its place.
// A nil InsertedText means pure deletion.
type Replacement struct {
	DeletedRegion Region
	InsertedText  *string

	// RuleID names the rule that proposed the fix. Informational only.
	RuleID string
}

// Text returns a pointer to s for use as InsertedText.
func Text(s string) *string {
	return &s
}

// String formats the replacement for warnings.
func (r Replacement) String() string {
	inserted := "null"
	if r.InsertedText != nil {
		inserted = strconv.Quote(*r.InsertedText)
	}
	return fmt.Sprintf("(startLine: %s, endLine: %s, startColumn: %s, endColumn: %s, insertedContent: %s)",
		optional(r.DeletedRegion.StartLine),
		optional(r.DeletedRegion.EndLine),
		optional(r.DeletedRegion.StartColumn),
		optional(r.DeletedRegion.EndColumn),
		inserted)
}

func optional(v int) string {
	if v == 0 {
		return "null"
	}
	return strconv.Itoa(v)
}

// RecoverEndLine returns a copy of r whose EndLine is set, defaulting to
// StartLine. Applying it twice yields the same value.
func RecoverEndLine(r Replacement) Replacement {
	r.DeletedRegion.EndLine = r.DeletedRegion.LastLine()
	return r
}

// FileReplacements is every replacement that targets one resolved file path.
type FileReplacements struct {
	// FilePath is slash-separated and may be relative to the working directory.
	FilePath     string
	Replacements []Replacement
}
