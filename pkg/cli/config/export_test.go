package config

import (
	"context"
	"time"
)

// NewWorkspaceForTest creates a Workspace config for testing purposes
func NewWorkspaceForTest(paths ...string) *Workspace {
	return &Workspace{paths: paths}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// SetDebounceForTest shortens the reload debounce
func (w *WorkspaceWatcher) SetDebounceForTest(d time.Duration) {
	w.debounce = d
}

// ReloadForTest runs one reload immediately
func (w *WorkspaceWatcher) ReloadForTest(ctx context.Context) {
	w.reload(ctx)
}
