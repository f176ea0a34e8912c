package fsutil

import (
	"path/filepath"
	"strings"
)

// RelativeToRoot returns path relative to root when path lies inside root.
// Otherwise, or when root is empty, path is returned unchanged.
func RelativeToRoot(path, root string) string {
	if root == "" || !filepath.IsAbs(path) || !filepath.IsAbs(root) {
		return path
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}

// RelativeToFileSystemRoot strips the volume name and leading separators of
// an absolute path, so "/a/b" becomes "a/b" and `C:\a\b` becomes `a\b`.
// Relative paths are returned unchanged.
func RelativeToFileSystemRoot(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rest := path[len(filepath.VolumeName(path)):]
	return strings.TrimLeft(rest, `/\`)
}

// MirrorPath places target below dir, keeping its path relative to root
// (or to the file-system root when target lies outside root).
func MirrorPath(dir, target, root string) string {
	return filepath.Join(dir, RelativeToFileSystemRoot(RelativeToRoot(target, root)))
}
