// Package logger provides structured logging for ScanCore.
package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	loggerKey contextKey = "scancore.logger"
	runIDKey  contextKey = "scancore.run_id"
	workerKey contextKey = "scancore.worker"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRunID adds a soak run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithWorker adds a worker thread index to the context.
func WithWorker(ctx context.Context, tidx int) context.Context {
	return context.WithValue(ctx, workerKey, tidx)
}

// WorkerFromContext extracts the worker thread index from context, or -1.
func WorkerFromContext(ctx context.Context) int {
	if tidx, ok := ctx.Value(workerKey).(int); ok {
		return tidx
	}
	return -1
}

// L is a shorthand for FromContext that also enriches the logger with the
// run ID and worker index from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if runID := RunIDFromContext(ctx); runID != "" {
		l = l.With("run_id", runID)
	}
	if tidx := WorkerFromContext(ctx); tidx >= 0 {
		l = l.With("tidx", tidx)
	}

	return l
}
