// Package fsutil provides file system helpers for reading Markdown sources
// and writing extracted code atomically.
package fsutil

import (
	"context"
	"errors"
	"fmt"
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

// ReadFile reads a Markdown source. Failures wrap one of the sentinel errors
// above where one applies, as well as the underlying fs error.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err == nil {
		return content, nil
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	}

	if stat, statErr := os.Stat(path); statErr == nil && stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return nil, fmt.Errorf("read %s: %w", path, err)
}
