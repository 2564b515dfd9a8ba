// Package logging configures the process-wide slog logger. Records go to stdout and,
// when a file is configured, to a size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"recapstream/config"
)

// Init builds the logger described by cfg, installs it as slog's default and returns
// it together with a closer for the rotated file (a no-op when no file is used).
// Output from the log package goes through the same handler once it is installed.
func Init(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if path := strings.TrimSpace(cfg.File); path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}

	logger := New(out, cfg.Level, cfg.Format)
	slog.SetDefault(logger)
	return logger, closer
}

// New returns a logger writing to w at the given level and format ("json" or "text").
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a config string onto a slog level; unknown values mean info.
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
