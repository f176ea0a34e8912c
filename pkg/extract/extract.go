// Package extract turns the fixes of a SARIF run into per-file replacement
// lists.
package extract

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/yaklabco/sarifpatch/pkg/diag"
	"github.com/yaklabco/sarifpatch/pkg/fix"
	"github.com/yaklabco/sarifpatch/pkg/resolve"
	"github.com/yaklabco/sarifpatch/pkg/sarif"
)

// Run returns one FileReplacements per artifact change of every fix in run,
// in document order. File paths are resolved through uriBaseId indirection.
// Artifact changes without a uri, or with a cyclic base id, are skipped with
// a warning, as are individual replacements with an unusable region.
func Run(run *sarif.Run, index int, sink diag.Sink) []fix.FileReplacements {
	if run == nil {
		return nil
	}
	sink = diag.OrDiscard(sink)

	var out []fix.FileReplacements
	for ri := range run.Results {
		result := &run.Results[ri]

		for fi := range result.Fixes {
			for ci := range result.Fixes[fi].ArtifactChanges {
				change := &result.Fixes[fi].ArtifactChanges[ci]

				fr, ok := artifactChange(run, index, result, change, sink)
				if ok {
					out = append(out, fr)
				}
			}
		}
	}

	return out
}

func artifactChange(
	run *sarif.Run, index int, result *sarif.Result, change *sarif.ArtifactChange, sink diag.Sink,
) (fix.FileReplacements, bool) {
	loc := &change.ArtifactLocation
	if loc.URI == nil {
		sink.Warn(diag.Warning{
			Kind:    diag.KindMissingURI,
			Run:     index,
			Message: fmt.Sprintf("artifact change of rule %q has no uri, skipping it", result.RuleID),
		})
		return fix.FileReplacements{}, false
	}

	base, err := resolve.BaseURI(resolve.BaseIDFor(loc, result), run)
	if err != nil {
		sink.Warn(diag.Warning{
			Kind:    diag.KindBaseURICycle,
			Run:     index,
			File:    *loc.URI,
			Message: err.Error(),
		})
		return fix.FileReplacements{}, false
	}

	filePath := resolve.Join(base, *loc.URI)
	fr := fix.FileReplacements{
		FilePath:     filePath,
		Replacements: make([]fix.Replacement, 0, len(change.Replacements)),
	}

	for _, r := range change.Replacements {
		region, err := convertRegion(r.DeletedRegion)
		if err != nil {
			sink.Warn(diag.Warning{
				Kind:    diag.KindInvalidRegion,
				Run:     index,
				File:    filePath,
				Message: fmt.Sprintf("skipping replacement of rule %q: %v", result.RuleID, err),
			})
			continue
		}

		fr.Replacements = append(fr.Replacements, fix.Replacement{
			DeletedRegion: region,
			InsertedText:  r.InsertedText(),
			RuleID:        result.RuleID,
		})
	}

	return fr, true
}

var errNoStartLine = errors.New("deleted region has no startLine")

func convertRegion(r sarif.Region) (fix.Region, error) {
	if r.StartLine == nil {
		return fix.Region{}, errNoStartLine
	}

	var region fix.Region
	fields := []struct {
		name string
		src  *int64
		dst  *int
	}{
		{"startLine", r.StartLine, &region.StartLine},
		{"startColumn", r.StartColumn, &region.StartColumn},
		{"endLine", r.EndLine, &region.EndLine},
		{"endColumn", r.EndColumn, &region.EndColumn},
	}

	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v, err := safecast.Conv[int](*f.src)
		if err != nil {
			return fix.Region{}, fmt.Errorf("%s: %w", f.name, err)
		}
		if v < 1 {
			return fix.Region{}, fmt.Errorf("%s is %d, must be at least 1", f.name, v)
		}
		*f.dst = v
	}

	return region, nil
}

// GroupByFile merges entries with the same FilePath. Files keep the order in
// which they were first seen and replacements keep their original order.
func GroupByFile(list []fix.FileReplacements) []fix.FileReplacements {
	index := make(map[string]int, len(list))
	var out []fix.FileReplacements

	for _, fr := range list {
		i, ok := index[fr.FilePath]
		if !ok {
			index[fr.FilePath] = len(out)
			out = append(out, fix.FileReplacements{
				FilePath:     fr.FilePath,
				Replacements: append([]fix.Replacement(nil), fr.Replacements...),
			})
			continue
		}
		out[i].Replacements = append(out[i].Replacements, fr.Replacements...)
	}

	return out
}

// Count returns the total number of replacements in list.
func Count(list []fix.FileReplacements) int {
	n := 0
	for _, fr := range list {
		n += len(fr.Replacements)
	}
	return n
}
