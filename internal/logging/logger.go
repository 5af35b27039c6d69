package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a configured application logger.
// It writes to Stderr so Stdout stays free for reports and JSON output.
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// FileOptions bounds the size of a rotated log file.
type FileOptions struct {
	MaxSizeMB  int // rotate once the file reaches this size
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileOptions keeps about a week of flights on a companion computer's SD card.
var DefaultFileOptions = FileOptions{MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 7, Compress: true}

// NewFile logs to a rotating file. Close the returned closer on shutdown.
func NewFile(path string, level slog.Level, opts FileOptions) (*slog.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	return NewWithWriter(w, level), w
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a flag value ("debug", "info", "warn", "error") to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
