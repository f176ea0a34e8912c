package diag

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/sarifpatch/internal/logging"
)

// NewLogSink returns a Sink that logs every warning at WARN level.
// Details are logged as individual lines below the warning.
func NewLogSink(logger *log.Logger) Sink {
	return SinkFunc(func(w Warning) {
		keyvals := []any{logging.FieldKind, string(w.Kind)}
		if w.Run >= 0 {
			keyvals = append(keyvals, logging.FieldRun, w.Run)
		}
		if w.File != "" {
			keyvals = append(keyvals, logging.FieldPath, w.File)
		}

		logger.Warn(w.Message, keyvals...)
		for _, line := range w.Details {
			logger.Warn("  " + line)
		}
	})
}
