package fix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifpatch/pkg/diag"
	"github.com/yaklabco/sarifpatch/pkg/fix"
)

func cols(line, startCol, endCol int, text *string) fix.Replacement {
	return fix.Replacement{
		DeletedRegion: fix.Region{StartLine: line, EndLine: line, StartColumn: startCol, EndColumn: endCol},
		InsertedText:  text,
	}
}

func TestApplyOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		rep   fix.Replacement
		want  []string
	}{
		{
			name:  "single-line column replace",
			lines: []string{"abc"},
			rep:   cols(1, 1, 2, fix.Text("X")),
			want:  []string{"Xbc"},
		},
		{
			name:  "single-line column deletion",
			lines: []string{"abc"},
			rep:   cols(1, 1, 2, nil),
			want:  []string{"bc"},
		},
		{
			name:  "whole-line replace",
			lines: []string{"abc", "def"},
			rep:   fix.Replacement{DeletedRegion: fix.Region{StartLine: 1}, InsertedText: fix.Text("hello")},
			want:  []string{"hello", "def"},
		},
		{
			name:  "whole-line deletion",
			lines: []string{"abc", "def", "ghi"},
			rep:   fix.Replacement{DeletedRegion: fix.Region{StartLine: 2}},
			want:  []string{"abc", "ghi"},
		},
		{
			name:  "insertion at column",
			lines: []string{"fun f() {}"},
			rep:   cols(1, 10, 10, fix.Text(" return ")),
			want:  []string{"fun f() { return }"},
		},
		{
			name:  "rename identifier",
			lines: []string{"enum class A {", "    NAme_MYa_sayR_", "}"},
			rep:   cols(2, 5, 19, fix.Text("nameMyaSayR")),
			want:  []string{"enum class A {", "    nameMyaSayR", "}"},
		},
		{
			name:  "end column past end of line is clamped",
			lines: []string{"abc"},
			rep:   cols(1, 2, 40, fix.Text("Z")),
			want:  []string{"aZ"},
		},
		{
			name:  "columns count utf-16 units",
			lines: []string{"a😀b"},
			rep:   cols(1, 4, 5, fix.Text("c")),
			want:  []string{"a😀c"},
		},
		{
			name:  "inserted newline splits the line",
			lines: []string{"a, b", "c"},
			rep:   cols(1, 3, 4, fix.Text("\n")),
			want:  []string{"a,", "b", "c"},
		},
		{
			name:  "only start column means whole line",
			lines: []string{"abc", "def"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 2, StartColumn: 2},
				InsertedText:  fix.Text("xyz"),
			},
			want: []string{"abc", "xyz"},
		},
		{
			name:  "multi-line whole-line deletion",
			lines: []string{"1", "2", "3", "4", "5"},
			rep:   fix.Replacement{DeletedRegion: fix.Region{StartLine: 2, EndLine: 4}},
			want:  []string{"1", "5"},
		},
		{
			name:  "multi-line whole-line replace keeps block as one element",
			lines: []string{"1", "2", "3", "4"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 2, EndLine: 3},
				InsertedText:  fix.Text("two\nthree\n"),
			},
			want: []string{"1", "two\nthree\n", "4"},
		},
		{
			name:  "multi-line column excision",
			lines: []string{"val x = listOf(", "    1,", "    2", ")", "end"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 1, StartColumn: 16, EndLine: 4, EndColumn: 1},
			},
			want: []string{"val x = listOf(", ")", "end"},
		},
		{
			name:  "multi-line column excision and insert",
			lines: []string{"def f(", "  a,", "  b):", "  pass"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 1, StartColumn: 7, EndLine: 3, EndColumn: 4},
				InsertedText:  fix.Text("a,\n      b"),
			},
			want: []string{"def f(a,\n      b", "):", "  pass"},
		},
		{
			name:  "adjacent lines keep both remnants",
			lines: []string{"ab", "cd", "ef"},
			rep:   fix.Replacement{DeletedRegion: fix.Region{StartLine: 1, StartColumn: 2, EndLine: 2, EndColumn: 2}},
			want:  []string{"a", "d", "ef"},
		},
		{
			name:  "adjacent lines with insert",
			lines: []string{"ab", "cd", "ef"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 1, StartColumn: 2, EndLine: 2, EndColumn: 2},
				InsertedText:  fix.Text("X"),
			},
			want: []string{"aX", "d", "ef"},
		},
		{
			name:  "columned region through end of file",
			lines: []string{"a", "b", "c"},
			rep:   fix.Replacement{DeletedRegion: fix.Region{StartLine: 2, StartColumn: 1, EndLine: 4, EndColumn: 1}},
			want:  []string{"a"},
		},
		{
			name:  "columned region through end of file keeps prefix",
			lines: []string{"a", "bc", "d"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 2, StartColumn: 2, EndLine: 4, EndColumn: 1},
				InsertedText:  fix.Text("!"),
			},
			want: []string{"a", "b!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			original := append([]string(nil), tt.lines...)

			got, err := fix.ApplyOne(tt.lines, tt.rep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, original, tt.lines, "input lines must not be modified")
		})
	}
}

func TestApplyOne_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []string
		rep     fix.Replacement
		wantErr error
	}{
		{
			name:    "empty file",
			lines:   nil,
			rep:     cols(1, 1, 2, fix.Text("x")),
			wantErr: fix.ErrOutOfRange,
		},
		{
			name:    "start line past end",
			lines:   []string{"a", "b"},
			rep:     cols(3, 1, 2, fix.Text("x")),
			wantErr: fix.ErrOutOfRange,
		},
		{
			name:    "multi-line end past end",
			lines:   []string{"a", "b"},
			rep:     fix.Replacement{DeletedRegion: fix.Region{StartLine: 1, EndLine: 5}},
			wantErr: fix.ErrOutOfRange,
		},
		{
			name:  "columned end two lines past end",
			lines: []string{"a", "b"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 1, StartColumn: 1, EndLine: 4, EndColumn: 1},
			},
			wantErr: fix.ErrOutOfRange,
		},
		{
			name:  "columned end past end at later column",
			lines: []string{"a", "b"},
			rep: fix.Replacement{
				DeletedRegion: fix.Region{StartLine: 1, StartColumn: 1, EndLine: 3, EndColumn: 2},
			},
			wantErr: fix.ErrOutOfRange,
		},
		{
			name:    "start line zero",
			lines:   []string{"a"},
			rep:     fix.Replacement{DeletedRegion: fix.Region{StartLine: 0, EndLine: 1}},
			wantErr: fix.ErrInvalidRegion,
		},
		{
			name:    "end line before start line",
			lines:   []string{"a", "b", "c"},
			rep:     fix.Replacement{DeletedRegion: fix.Region{StartLine: 3, EndLine: 2}},
			wantErr: fix.ErrInvalidRegion,
		},
		{
			name:    "reversed columns",
			lines:   []string{"abcdef"},
			rep:     cols(1, 5, 2, nil),
			wantErr: fix.ErrInvalidRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fix.ApplyOne(tt.lines, tt.rep)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var verr *fix.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	content := []string{
		"import sys",
		"",
		"def main():",
		"  x = 0",
		"  inputs[x] = 1",
		"  if inputs[x + 1] == True:",
		"    sys.exit(1)",
	}

	var sink diag.Collector
	filtered := fix.Filter(fix.FileReplacements{
		FilePath: "main.py",
		Replacements: []fix.Replacement{
			cols(5, 3, 16, fix.Text("  inputs.get(x) = 1")),
			cols(6, 3, 28, fix.Text("  if inputs.get(x + 1) == True:")),
			cols(40, 1, 2, fix.Text("never")),
		},
	}, 0, &sink)

	result := fix.Apply(content, filtered.Replacements, fix.ApplyOptions{File: "main.py", Sink: &sink})

	assert.Equal(t, []string{
		"import sys",
		"",
		"def main():",
		"  x = 0",
		"    inputs.get(x) = 1",
		"    if inputs.get(x + 1) == True:",
		"    sys.exit(1)",
	}, result.Lines)
	assert.Len(t, result.Applied, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 40, result.Skipped[0].DeletedRegion.StartLine)

	warnings := sink.ByKind(diag.KindOutOfRange)
	require.Len(t, warnings, 1)
	assert.Equal(t, "main.py", warnings[0].File)
	assert.Contains(t, warnings[0].Message, "the file only has 7 line(s)")
}

func TestApply_MultiLineShiftsOnlyLaterLines(t *testing.T) {
	t.Parallel()

	content := []string{"a", "b", "c", "d", "e", "f"}
	reps := fix.Filter(fix.FileReplacements{
		FilePath: "f.txt",
		Replacements: []fix.Replacement{
			cols(1, 1, 2, fix.Text("A")),
			{DeletedRegion: fix.Region{StartLine: 2, EndLine: 4}},
			cols(6, 1, 2, fix.Text("F")),
		},
	}, 0, nil).Replacements

	result := fix.Apply(content, reps, fix.ApplyOptions{})

	assert.Equal(t, []string{"A", "e", "F"}, result.Lines)
	assert.Empty(t, result.Skipped)
}

func TestApply_InvalidRegionWarning(t *testing.T) {
	t.Parallel()

	var sink diag.Collector
	result := fix.Apply([]string{"abcdef"}, []fix.Replacement{cols(1, 5, 2, nil)},
		fix.ApplyOptions{File: "x", Run: 2, Sink: &sink})

	assert.Equal(t, []string{"abcdef"}, result.Lines)
	warnings := sink.ByKind(diag.KindInvalidRegion)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Run)
}
