package configloader

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNoRepository is returned when no git repository encloses a directory.
var ErrNoRepository = errors.New("not inside a git repository")

// DetectRepositoryRoot returns the work tree root of the git repository
// enclosing dir. Bare repositories have no work tree and are reported as
// ErrNoRepository.
func DetectRepositoryRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNoRepository, abs)
		}
		return "", fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return "", fmt.Errorf("%w: %s is bare", ErrNoRepository, abs)
		}
		return "", fmt.Errorf("open worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}
