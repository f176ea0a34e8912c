package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sarifpatch/internal/ui/pretty"
	"github.com/yaklabco/sarifpatch/pkg/adapter"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats adapter.Stats
		want  string
	}{
		{
			name:  "nothing fixed",
			stats: adapter.Stats{},
			want:  "No fixes applied\n",
		},
		{
			name:  "nothing fixed with warnings",
			stats: adapter.Stats{Warnings: 1},
			want:  "No fixes applied, 1 warning\n",
		},
		{
			name:  "single file",
			stats: adapter.Stats{Files: 1, Changed: 1, Applied: 1},
			want:  "1 file fixed (1 fix applied)\n",
		},
		{
			name:  "dropped and skipped",
			stats: adapter.Stats{Files: 2, Changed: 2, Applied: 3, Dropped: 1, Skipped: 2, Warnings: 3},
			want:  "2 files fixed (3 fixes applied, 1 dropped, 2 skipped), 3 warnings\n",
		},
		{
			name:  "unchanged copies",
			stats: adapter.Stats{Files: 2, Changed: 1, Applied: 2},
			want:  "2 files fixed (2 fixes applied), 1 unchanged\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("all applied", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(adapter.Stats{Files: 3, Changed: 3, Applied: 5})
		assert.Contains(t, result, "Summary")
		assert.Contains(t, result, "Files fixed:       3")
		assert.Contains(t, result, "Fixes applied:     5")
		assert.Contains(t, result, "All fixes applied")
		assert.NotContains(t, result, "Overlapping:")
	})

	t.Run("partial", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(adapter.Stats{Files: 1, Changed: 1, Applied: 1, Dropped: 1, Warnings: 1})
		assert.Contains(t, result, "Overlapping:     1")
		assert.Contains(t, result, "Warnings:          1")
		assert.Contains(t, result, "Fixes applied partially")
	})

	t.Run("nothing", func(t *testing.T) {
		t.Parallel()

		result := styles.FormatSummary(adapter.Stats{})
		assert.Contains(t, result, "No fixes applied")
		assert.NotContains(t, result, "Files changed:")
	})
}
