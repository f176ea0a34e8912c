package fix

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/yaklabco/sarifpatch/pkg/diag"
)

var (
	// ErrOutOfRange marks a replacement that points past the end of the file.
	ErrOutOfRange = errors.New("region out of range")
	// ErrInvalidRegion marks a replacement whose region is malformed.
	ErrInvalidRegion = errors.New("invalid region")
)

// ValidationError describes a replacement that could not be applied.
type ValidationError struct {
	Replacement Replacement
	Message     string
	err         error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unable to apply the fix at line %d: %s", e.Replacement.DeletedRegion.StartLine, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// ApplyOptions identifies where applied replacements come from.
type ApplyOptions struct {
	File string
	Run  int
	Sink diag.Sink
}

// ApplyResult is the outcome of Apply.
type ApplyResult struct {
	Lines   []string
	Applied []Replacement
	Skipped []Replacement
}

// Apply applies replacements to lines in the given order. Replacements
// should be ordered last-in-file first, as returned by Filter. A replacement
// that cannot be applied is skipped and reported; the others still apply.
// The input slice is never modified.
func Apply(lines []string, reps []Replacement, opts ApplyOptions) ApplyResult {
	sink := diag.OrDiscard(opts.Sink)
	result := ApplyResult{Lines: lines}

	for _, r := range reps {
		next, err := ApplyOne(result.Lines, r)
		if err != nil {
			kind := diag.KindInvalidRegion
			if errors.Is(err, ErrOutOfRange) {
				kind = diag.KindOutOfRange
			}
			sink.Warn(diag.Warning{Kind: kind, Run: opts.Run, File: opts.File, Message: err.Error()})
			result.Skipped = append(result.Skipped, r)
			continue
		}

		result.Lines = next
		result.Applied = append(result.Applied, r)
	}

	return result
}

// ApplyOne returns a new line slice with r applied to lines.
//
// Columned regions replace the text between the start and end positions,
// where columns count UTF-16 code units and the end column is exclusive.
// On a single line the result is split back into lines. Across lines the
// start line keeps the text before the start column followed by the
// inserted text, the end line keeps the text from the end column on, and
// the lines in between are removed. A region ending at column 1 of the
// line just past the last one deletes through the end of the file.
// Regions without columns replace whole lines by the inserted text as a
// single element, which may carry its own newlines.
func ApplyOne(lines []string, r Replacement) ([]string, error) {
	r = RecoverEndLine(r)
	region := r.DeletedRegion
	start, end := region.StartLine-1, region.EndLine-1

	throughEOF := region.HasColumns() && region.EndColumn == 1 &&
		region.EndLine == len(lines)+1 && start < end && start < len(lines)
	if throughEOF {
		end = len(lines) - 1
	}

	switch {
	case region.StartLine < 1:
		return nil, invalid(r, "start line must be at least 1")
	case end < start:
		return nil, invalid(r, fmt.Sprintf("end line %d is before start line %d", region.EndLine, region.StartLine))
	case len(lines) == 0:
		return nil, outOfRange(r, "the file is empty")
	case start >= len(lines), end >= len(lines):
		return nil, outOfRange(r, fmt.Sprintf("the file only has %d line(s)", len(lines)))
	}

	if !region.HasColumns() {
		return replaceLines(lines, start, end, r.InsertedText), nil
	}

	if region.StartLine == region.EndLine && region.StartColumn > region.EndColumn {
		return nil, invalid(r, fmt.Sprintf("start column %d is after end column %d", region.StartColumn, region.EndColumn))
	}

	var inserted string
	if r.InsertedText != nil {
		inserted = *r.InsertedText
	}

	head := lines[start][:byteOffset(lines[start], region.StartColumn-1)] + inserted

	switch {
	case throughEOF:
		if head == "" {
			return splice(lines, start, end, nil), nil
		}
		return splice(lines, start, end, []string{head}), nil
	case start == end:
		tail := lines[end][byteOffset(lines[end], region.EndColumn-1):]
		return splice(lines, start, end, strings.Split(head+tail, "\n")), nil
	default:
		tail := lines[end][byteOffset(lines[end], region.EndColumn-1):]
		return splice(lines, start, end, []string{head, tail}), nil
	}
}

// replaceLines swaps lines[start..end] for text as one element, or removes
// them when text is nil.
func replaceLines(lines []string, start, end int, text *string) []string {
	if text == nil {
		return splice(lines, start, end, nil)
	}
	return splice(lines, start, end, []string{*text})
}

// splice returns a copy of lines with lines[start..end] replaced by with.
func splice(lines []string, start, end int, with []string) []string {
	out := make([]string, 0, len(lines)-(end-start+1)+len(with))
	out = append(out, lines[:start]...)
	out = append(out, with...)
	out = append(out, lines[end+1:]...)
	return out
}

// byteOffset converts a 0-based UTF-16 column into a byte offset in line,
// clamped to the line length.
func byteOffset(line string, units int) int {
	if units <= 0 {
		return 0
	}

	seen := 0
	for i, r := range line {
		if seen >= units {
			return i
		}
		if n := utf16.RuneLen(r); n > 0 {
			seen += n
		} else {
			seen++
		}
	}

	return len(line)
}

func invalid(r Replacement, msg string) error {
	return &ValidationError{Replacement: r, Message: msg, err: ErrInvalidRegion}
}

func outOfRange(r Replacement, msg string) error {
	return &ValidationError{Replacement: r, Message: msg, err: ErrOutOfRange}
}
