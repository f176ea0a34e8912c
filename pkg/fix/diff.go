package fix

import (
	"fmt"
	"strings"
)

// Diff is a unified line diff between a file and its fixed copy.
type Diff struct {
	// Path is the file path shown in the headers.
	Path string

	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk is a single "@@" section of a unified diff.
type DiffHunk struct {
	// OriginalStart and ModifiedStart are 1-based.
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is one line of a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// Prefix returns the unified-diff marker for the kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// GenerateDiff compares two line slices. Elements that carry embedded
// newlines are split first so the diff shows the serialized lines.
// It returns nil when there is no change.
func GenerateDiff(path string, original, modified []string) *Diff {
	before, after := expand(original), expand(modified)
	ops := diffOps(before, after)

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}

	diff.Hunks = groupHunks(ops)

	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

func expand(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !strings.Contains(line, "\n") {
			out = append(out, line)
			continue
		}
		out = append(out, strings.Split(strings.TrimSuffix(line, "\n"), "\n")...)
	}
	return out
}

// diffOps walks a suffix LCS table and emits one operation per line,
// removals before additions within a change.
func diffOps(before, after []string) []DiffLine {
	n, m := len(before), len(after)

	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if before[i] == after[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]DiffLine, 0, max(n, m))
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && before[i] == after[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: before[i]})
			i++
			j++
		case j == m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: before[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: after[j]})
			j++
		}
	}

	return ops
}

// groupHunks splits operations into hunks, merging changes separated by
// at most twice the context size.
func groupHunks(ops []DiffLine) []DiffHunk {
	// oldAt[i] and newAt[i] are the 1-based line numbers at ops[i].
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	oldAt[0], newAt[0] = 1, 1
	for i, op := range ops {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if op.Kind != DiffLineAdd {
			oldAt[i+1]++
		}
		if op.Kind != DiffLineRemove {
			newAt[i+1]++
		}
	}

	var hunks []DiffHunk
	for i := 0; i < len(ops); {
		if ops[i].Kind == DiffLineContext {
			i++
			continue
		}

		start := max(0, i-contextLines)
		end := i
		for end < len(ops) {
			if ops[end].Kind != DiffLineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Kind == DiffLineContext {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				end = min(len(ops), end+contextLines)
				break
			}
			end = run
		}

		hunk := DiffHunk{
			OriginalStart: oldAt[start],
			OriginalCount: oldAt[end] - oldAt[start],
			ModifiedStart: newAt[start],
			ModifiedCount: newAt[end] - newAt[start],
			Lines:         append([]DiffLine(nil), ops[start:end]...),
		}
		if hunk.OriginalCount == 0 {
			hunk.OriginalStart--
		}
		if hunk.ModifiedCount == 0 {
			hunk.ModifiedStart--
		}
		hunks = append(hunks, hunk)

		i = end
	}

	return hunks
}
