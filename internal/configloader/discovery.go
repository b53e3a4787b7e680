package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-system and per-user config directories.
const appName = "mdhighlight"

// ConfigPaths holds the config files found for one run. An empty field means
// that layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Candidate file names. Project files are searched in every directory from
// the working directory up to the repository root; the others live in
// fixed per-system and per-user directories.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigNames = []string{".mdhighlight.yml", ".mdhighlight.yaml", "mdhighlight.yml", "mdhighlight.yaml"}
	dirConfigNames     = []string{"config.yaml", "config.yml"}
	repositoryMarkers  = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project config files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigNames),
		User:    firstFile(userConfigDir(), dirConfigNames),
		Project: project,
	}, nil
}

// systemConfigDir is /etc/mdhighlight, or %ProgramData%\mdhighlight on Windows.
func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

// userConfigDir follows XDG_CONFIG_HOME, falling back to ~/.config.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks upward from startDir and returns the first project
// config file. The search ends at a repository root, the home directory or
// the filesystem root; "" means nothing was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstFile(dir, projectConfigNames); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepositoryRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range repositoryMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
