package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// ParseLevel converts a level name to slog.Level.
// Unrecognized values map to slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a slog.Logger writing to w. format is "json", "logfmt" or
// anything else for human readable text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		Formatter:       charmlog.TextFormatter,
	}
	switch strings.ToLower(format) {
	case "json":
		opts.Formatter = charmlog.JSONFormatter
	case "logfmt":
		opts.Formatter = charmlog.LogfmtFormatter
	}
	return slog.New(charmlog.NewWithOptions(w, opts))
}

// Init installs the process-wide default logger. Call once at startup.
func Init(level slog.Level, format string) *slog.Logger {
	l := New(os.Stdout, level, format)
	slog.SetDefault(l)
	return l
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
