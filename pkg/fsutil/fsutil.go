// Package fsutil is the file-system layer used to copy target files, rewrite
// the copies and export the results. Originals are only ever read.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileSystem is the set of file operations needed to apply fixes.
// Paths may be absolute or relative to the working directory and use the
// host separator.
type FileSystem interface {
	ReadText(ctx context.Context, path string) (string, error)
	ReadLines(ctx context.Context, path string) ([]string, error)
	WriteLines(ctx context.Context, path string, lines []string) error
	Copy(ctx context.Context, src, dst string) error
	CreateDirectories(ctx context.Context, path string) error
	Canonicalize(path string) (string, error)
	CreateTempDirectory(prefix string) (string, error)
	SameFile(a, b string) (bool, error)
	IsDir(path string) (bool, error)
	RemoveAll(path string) error
}

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	Path string
	Mode os.FileMode
	Size int64

	// Fingerprint is the HighwayHash-64 of the content.
	Fingerprint uint64
}

// statFile stats path and classifies the common failures.
func statFile(path string) (os.FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return stat, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}
