// internal/logging/context.go
package logging

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if runID := RunIDFromContext(ctx); runID != "" {
		fields = append(fields, zap.String("run.id", runID))
	}
	if dir := ProjectDirFromContext(ctx); dir != "" {
		fields = append(fields, zap.String("project.dir", dir))
	}

	return fields
}

// Context key types
type runCtxKey struct{}
type projectDirCtxKey struct{}
type loggerCtxKey struct{}

// NewRunID returns a fresh identifier for one command invocation.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds the run ID to context.
// Panics if runID is not a valid UUID.
func WithRunID(ctx context.Context, runID string) context.Context {
	if _, err := uuid.Parse(runID); err != nil {
		panic("logging: invalid run ID: " + err.Error())
	}
	return context.WithValue(ctx, runCtxKey{}, runID)
}

// RunIDFromContext extracts the run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(runCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithProjectDir adds the target project directory to context.
func WithProjectDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, projectDirCtxKey{}, dir)
}

// ProjectDirFromContext extracts the project directory from context.
func ProjectDirFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(projectDirCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return NewNop()
}
