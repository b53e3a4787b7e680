package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// WithLogger attaches logger to ctx under log.ContextKey, where the
// highlighter and runner look for a per-run logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// FromContext returns the logger attached to ctx, or the process default.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
