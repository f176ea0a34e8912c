package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/viant/afs"
)

// DirMode is the permission mode for created directories.
const DirMode os.FileMode = 0o755

// Local is the FileSystem backed by the local disk.
type Local struct {
	fs afs.Service
}

var _ FileSystem = (*Local)(nil)

// NewLocal creates a local FileSystem.
func NewLocal() *Local {
	return &Local{fs: afs.New()}
}

// ReadFile reads a file and returns its content along with metadata.
func (l *Local) ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := checkContext(ctx, "read file"); err != nil {
		return nil, nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	stat, err := statFile(abs)
	if err != nil {
		return nil, nil, err
	}

	content, err := l.fs.DownloadWithURL(ctx, abs)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	info := &FileInfo{
		Path:        path,
		Mode:        stat.Mode(),
		Size:        stat.Size(),
		Fingerprint: Fingerprint(content),
	}

	return content, info, nil
}

// ReadText returns the content of path as a string.
func (l *Local) ReadText(ctx context.Context, path string) (string, error) {
	content, _, err := l.ReadFile(ctx, path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ReadLines returns the lines of path without terminators.
func (l *Local) ReadLines(ctx context.Context, path string) ([]string, error) {
	text, err := l.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// WriteLines replaces the content of path with the serialized lines,
// keeping the mode of an existing file.
func (l *Local) WriteLines(ctx context.Context, path string, lines []string) error {
	mode := DefaultFileMode
	if stat, err := os.Stat(path); err == nil {
		mode = stat.Mode().Perm()
	}
	return l.write(ctx, path, []byte(JoinLines(lines)), mode)
}

// Copy copies the content and permissions of src to dst.
func (l *Local) Copy(ctx context.Context, src, dst string) error {
	content, info, err := l.ReadFile(ctx, src)
	if err != nil {
		return err
	}
	return l.write(ctx, dst, content, info.Mode.Perm())
}

func (l *Local) write(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := checkContext(ctx, "write file"); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if err := l.fs.Upload(ctx, abs, mode, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// CreateDirectories creates path and any missing parents.
func (l *Local) CreateDirectories(ctx context.Context, path string) error {
	if err := checkContext(ctx, "create directories"); err != nil {
		return err
	}
	if err := os.MkdirAll(path, DirMode); err != nil {
		return fmt.Errorf("create directories %s: %w", path, err)
	}
	return nil
}

// Canonicalize returns the absolute, symlink-free form of path. For a path
// that does not exist yet, the deepest existing ancestor is resolved and the
// remaining elements are appended.
func (l *Local) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}

	canonicalParent, err := l.Canonicalize(parent)
	if err != nil {
		return "", err
	}

	return filepath.Join(canonicalParent, filepath.Base(abs)), nil
}

// CreateTempDirectory creates a new directory under the system temp dir.
func (l *Local) CreateTempDirectory(prefix string) (string, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return "", fmt.Errorf("create temp directory: %w", err)
	}
	return l.Canonicalize(dir)
}

// SameFile reports whether a and b name the same file. Existing files are
// compared by identity; otherwise canonical paths are compared, ignoring
// case on Windows and macOS. A path that cannot be canonicalized, such as
// one going through a regular file, is compared in its cleaned absolute
// form and never fails the comparison.
func (l *Local) SameFile(a, b string) (bool, error) {
	statA, errA := os.Stat(a)
	statB, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(statA, statB), nil
	}

	canonicalA, err := l.comparablePath(a)
	if err != nil {
		return false, err
	}
	canonicalB, err := l.comparablePath(b)
	if err != nil {
		return false, err
	}

	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.EqualFold(canonicalA, canonicalB), nil
	}
	return canonicalA == canonicalB, nil
}

func (l *Local) comparablePath(path string) (string, error) {
	if canonical, err := l.Canonicalize(path); err == nil {
		return canonical, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("compare %s: %w", path, err)
	}
	return abs, nil
}

// IsDir reports whether path is an existing directory.
func (l *Local) IsDir(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, classify(path, err)
	}
	return stat.IsDir(), nil
}

// RemoveAll removes path and everything below it.
func (l *Local) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
