// Package logging provides slog-based logging for evq.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tessro/evq/internal/paths"
)

// ParseLevel converts a log level string to slog.Level.
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
// Returns slog.LevelInfo for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the global slog logger to write JSON to the specified
// path (paths.LogPath() when empty). Returns a cleanup function to close the
// log file.
func Setup(path string, level slog.Level) (cleanup func(), err error) {
	return SetupMulti(path, nil, level)
}

// SetupMulti initializes logging to both file and an additional writer
// (e.g., stderr). A nil extra writer logs to the file only.
func SetupMulti(path string, extra io.Writer, level slog.Level) (cleanup func(), err error) {
	f, err := openLogFile(path)
	if err != nil {
		return nil, err
	}

	var w io.Writer = f
	if extra != nil {
		w = io.MultiWriter(f, extra)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return func() { f.Close() }, nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = paths.LogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	// Append mode, create if not exists
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

// SetupTest configures logging for tests (writes to provided writer, text format).
func SetupTest(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))
}

// Recover converts a panic into an error, logging it with a stack trace.
// Use in a defer with a named error result:
//
//	defer logging.Recover("dispatch", &err)
func Recover(name string, err *error) {
	if r := recover(); r != nil {
		slog.Error("panic recovered",
			"op", name,
			"panic", r,
			"stack", string(captureStack()),
		)
		*err = &PanicError{Op: name, Value: r}
	}
}

// PanicError wraps a recovered panic value.
type PanicError struct {
	Op    string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic: %v", e.Op, e.Value)
}

// captureStack returns the current goroutine's stack trace.
func captureStack() []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, len(buf)*2)
	}
}
