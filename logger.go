package framecad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while combine calls run on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for framecad and all its sub-packages.
// By default, framecad produces no log output.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by framecad:
//   - [slog.LevelDebug]: per-stage geometry counts (chains, connections, pieces)
//   - [slog.LevelInfo]: pipeline milestones (parts extracted, frame combined)
//   - [slog.LevelWarn]: non-fatal drawing or topology problems
//
// Example:
//
//	framecad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by framecad.
// Sub-packages (frame/, drawing/, store/) call this to share the same
// logger configuration without introducing import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
