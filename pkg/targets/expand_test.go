package targets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/sarifpatch/pkg/targets"
)

func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func TestExpand_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "Main.kt")

	files, err := targets.Expand(context.Background(), targets.Options{
		Paths:      []string{"Main.kt"},
		WorkingDir: dir,
		Extensions: []string{".py"},
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// Files named directly ignore the extension filter.
	if len(files) != 1 || files[0] != filepath.Join(dir, "Main.kt") {
		t.Errorf("unexpected files %v", files)
	}
}

func TestExpand_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"src/Main.kt",
		"src/util/Strings.kt",
		"src/util/strings_test.py",
		"build/generated/Gen.kt",
		".git/config",
		"src/.hidden.kt",
	)

	tests := []struct {
		name       string
		extensions []string
		excludes   []string
		want       []string
	}{
		{
			name: "every visible file",
			want: []string{
				"build/generated/Gen.kt",
				"src/Main.kt",
				"src/util/Strings.kt",
				"src/util/strings_test.py",
			},
		},
		{
			name:       "extension filter without dot",
			extensions: []string{"kt"},
			want: []string{
				"build/generated/Gen.kt",
				"src/Main.kt",
				"src/util/Strings.kt",
			},
		},
		{
			name:       "exclude directory",
			extensions: []string{".kt"},
			excludes:   []string{"build/**"},
			want: []string{
				"src/Main.kt",
				"src/util/Strings.kt",
			},
		},
		{
			name:     "exclude by base name",
			excludes: []string{"*_test.py", "generated"},
			want: []string{
				"src/Main.kt",
				"src/util/Strings.kt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := targets.Expand(context.Background(), targets.Options{
				Paths:        []string{"."},
				WorkingDir:   dir,
				Extensions:   tt.extensions,
				ExcludeGlobs: tt.excludes,
			})
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}

			if len(files) != len(tt.want) {
				t.Fatalf("expected %d files, got %d: %v", len(tt.want), len(files), files)
			}
			for i, want := range tt.want {
				if files[i] != filepath.Join(dir, filepath.FromSlash(want)) {
					t.Errorf("file[%d] = %s, want %s", i, files[i], want)
				}
			}
		})
	}
}

func TestExpand_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a/One.kt", "a/Two.kt")

	files, err := targets.Expand(context.Background(), targets.Options{
		Paths:      []string{"a", "a/One.kt", filepath.Join(dir, "a", "Two.kt")},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %v", files)
	}
}

func TestExpand_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := targets.Expand(context.Background(), targets.Options{
		Paths:      []string{"missing.kt"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestExpand_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := targets.Expand(context.Background(), targets.Options{
		Paths:        []string{"."},
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid exclude pattern") {
		t.Errorf("expected invalid pattern error, got %v", err)
	}
}

func TestExpand_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "Main.kt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := targets.Expand(ctx, targets.Options{Paths: []string{"."}, WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExpand_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real/Doc.kt")

	externalDir := t.TempDir()
	writeTree(t, externalDir, "External.kt")

	if err := os.Symlink(externalDir, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := targets.Options{Paths: []string{"."}, WorkingDir: dir}

	files, err := targets.Expand(context.Background(), opts)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "Doc.kt") {
		t.Errorf("expected only real/Doc.kt without following symlinks, got %v", files)
	}

	opts.FollowSymlinks = true
	files, err = targets.Expand(context.Background(), opts)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with FollowSymlinks, got %v", files)
	}
}
