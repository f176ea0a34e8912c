package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/sarifpatch/pkg/fix"
)

func FuzzApplyOne(f *testing.F) {
	f.Add("abc\ndef", 1, 1, 1, 2, "X", true)
	f.Add("abc", 1, 0, 0, 0, "", false)
	f.Add("a\nb\nc\nd", 2, 2, 4, 1, "x\ny", true)
	f.Add("", 1, 1, 0, 0, "", false)
	f.Add("héllo 😀", 1, 3, 1, 9, "", true)

	f.Fuzz(func(t *testing.T, content string, startLine, startCol, endLine, endCol int, text string, hasText bool) {
		lines := strings.Split(content, "\n")
		original := append([]string(nil), lines...)

		rep := fix.Replacement{DeletedRegion: fix.Region{
			StartLine:   startLine,
			StartColumn: startCol,
			EndLine:     endLine,
			EndColumn:   endCol,
		}}
		if hasText {
			rep.InsertedText = fix.Text(text)
		}

		// Negative columns are never produced by extraction.
		if startCol < 0 || endCol < 0 || endLine < 0 {
			return
		}

		_, _ = fix.ApplyOne(lines, rep)

		for i := range lines {
			if lines[i] != original[i] {
				t.Fatalf("ApplyOne modified its input at line %d", i)
			}
		}
	})
}

func FuzzGenerateDiff(f *testing.F) {
	f.Add("", "")
	f.Add("a\nb\nc", "a\nx\nc")
	f.Add("line1\nline2", "line1\nline2\nline3")

	f.Fuzz(func(t *testing.T, original, modified string) {
		diff := fix.GenerateDiff("test.txt", strings.Split(original, "\n"), strings.Split(modified, "\n"))
		if diff == nil {
			return
		}
		if !diff.HasChanges() {
			t.Error("non-nil diff without hunks")
		}
		_ = diff.FullString()
	})
}
