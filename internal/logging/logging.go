package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file created inside the config directory.
const FileName = "matrix.log"

// Logger is a slog logger backed by an optional file handle.
type Logger struct {
	*slog.Logger
	file *os.File
}

// NewFile appends to dir/matrix.log. The TUI owns the terminal, so it logs
// here instead of to stderr.
func NewFile(dir string, level slog.Level) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{Logger: newText(f, level), file: f}, nil
}

// New logs to w; CLI subcommands pass stderr.
func New(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: newText(w, level)}
}

// Discard drops everything.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError)
}

// Close releases the file handle, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
