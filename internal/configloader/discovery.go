package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the config files found for each layer. A layer without
// a file has an empty path.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// appDirName names the directory under the system and user config roots.
const appDirName = "sarifpatch"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectConfigFiles are searched in every directory from the working
	// directory upward, first match wins.
	projectConfigFiles = []string{".sarifpatch.yml", ".sarifpatch.yaml", ".sarifpatch.toml"}

	// dirConfigFiles are looked up in the system and user config directories.
	dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}
)

// DiscoverPaths finds the system, user and project config files for workDir.
//
//   - system: /etc/sarifpatch (or %ProgramData%\sarifpatch on Windows)
//   - user: $XDG_CONFIG_HOME/sarifpatch, defaulting to ~/.config/sarifpatch
//   - project: .sarifpatch.{yml,yaml,toml} in workDir or a parent
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), dirConfigFiles),
		User:    firstExisting(userConfigDir(), dirConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDirName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appDirName)
}

func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// FindProjectConfig searches startDir and its parents for a project config
// file and returns the first one found, or "". The search does not leave the
// git work tree that encloses startDir; outside a repository it stops at
// the home directory or the file system root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	stop := searchBoundary(dir)

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstExisting(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if dir == stop || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// searchBoundary is the last directory FindProjectConfig looks at.
func searchBoundary(dir string) string {
	if root, err := DetectRepositoryRoot(dir); err == nil {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// firstExisting returns the first of names present as a regular file in
// dir, or "".
func firstExisting(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
