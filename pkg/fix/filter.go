package fix

import (
	"fmt"
	"slices"
	"sort"

	"github.com/yaklabco/sarifpatch/pkg/diag"
)

// ConflictError describes a replacement dropped because it overlaps one
// that was kept.
type ConflictError struct {
	Kept    Replacement
	Dropped Replacement
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("replacement %s overlaps %s and was dropped", e.Dropped, e.Kept)
}

// Overlaps reports whether two replacements share at least one line.
func Overlaps(a, b Replacement) bool {
	return a.DeletedRegion.StartLine <= b.DeletedRegion.LastLine() &&
		b.DeletedRegion.StartLine <= a.DeletedRegion.LastLine()
}

// SortReplacements recovers EndLine on every replacement and returns them
// stably sorted by (StartLine, EndLine). The input is not modified.
func SortReplacements(reps []Replacement) []Replacement {
	sorted := make([]Replacement, len(reps))
	for i, r := range reps {
		sorted[i] = RecoverEndLine(r)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DeletedRegion, sorted[j].DeletedRegion
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.EndLine < b.EndLine
	})

	return sorted
}

// FilterOverlapping sweeps sorted replacements once. The first replacement
// is kept; each later one starting on or before the last kept EndLine is
// dropped. The input must come from SortReplacements.
func FilterOverlapping(sorted []Replacement) ([]Replacement, []*ConflictError) {
	if len(sorted) == 0 {
		return nil, nil
	}

	kept := make([]Replacement, 0, len(sorted))
	var conflicts []*ConflictError

	kept = append(kept, sorted[0])
	last := sorted[0]

	for _, r := range sorted[1:] {
		if r.DeletedRegion.StartLine <= last.DeletedRegion.EndLine {
			conflicts = append(conflicts, &ConflictError{Kept: last, Dropped: r})
			continue
		}
		kept = append(kept, r)
		last = r
	}

	return kept, conflicts
}

// Filter returns the replacements of fr that can be applied together,
// ordered last-in-file first. Each dropped replacement is reported to sink
// as an overlap warning.
func Filter(fr FileReplacements, run int, sink diag.Sink) FileReplacements {
	kept, conflicts := FilterOverlapping(SortReplacements(fr.Replacements))

	sink = diag.OrDiscard(sink)
	for _, c := range conflicts {
		msg := fmt.Sprintf("fix %s overlaps fix %s, dropping it", c.Dropped, c.Kept)
		if c.Dropped.RuleID != "" {
			msg += fmt.Sprintf(" (rule %s)", c.Dropped.RuleID)
		}
		sink.Warn(diag.Warning{
			Kind:    diag.KindOverlap,
			Run:     run,
			File:    fr.FilePath,
			Message: msg,
		})
	}

	slices.Reverse(kept)

	return FileReplacements{FilePath: fr.FilePath, Replacements: kept}
}
