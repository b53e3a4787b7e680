package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdhighlight/internal/configloader"
	"github.com/yaklabco/mdhighlight/pkg/runner"
)

// Exit codes for mdhighlight.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitFilesFailed indicates at least one file could not be read or highlighted.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed signals that the run completed but some files failed.
// The failures have already been reported.
var ErrFilesFailed = errors.New("some files could not be processed")

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFilesFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, ErrConfigExists),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
