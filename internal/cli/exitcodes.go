package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/sarifpatch/internal/configloader"
	"github.com/yaklabco/sarifpatch/pkg/adapter"
	"github.com/yaklabco/sarifpatch/pkg/fsutil"
	"github.com/yaklabco/sarifpatch/pkg/sarif"
)

// Exit codes for sarifpatch.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFixesSkipped indicates fixes were skipped or dropped in strict mode.
	ExitFixesSkipped = 1

	// ExitInvalidUsage indicates invalid command-line usage or an unmet precondition.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFixesSkipped is returned in strict mode when not every fix was applied.
var ErrFixesSkipped = errors.New("fixes were skipped")

// ExitCodeFromStats determines the exit code for a completed run.
func ExitCodeFromStats(stats adapter.Stats, strict bool) int {
	if strict && stats.Skipped+stats.Dropped > 0 {
		return ExitFixesSkipped
	}
	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrFixesSkipped):
		return ExitFixesSkipped
	case errors.Is(err, errConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, adapter.ErrNoSARIF),
		errors.Is(err, adapter.ErrNoTargetFiles),
		errors.Is(err, adapter.ErrTestRootNotDir),
		errors.Is(err, adapter.ErrCopyOntoSelf),
		errors.Is(err, adapter.ErrOutputIsTarget),
		errors.Is(err, errUsage):
		return ExitInvalidUsage
	case errors.Is(err, sarif.ErrDecode),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
