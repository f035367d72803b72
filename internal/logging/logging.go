// Package logging builds the runtime zerolog loggers. The display
// client owns the terminal, so its logger writes to a file under the
// user cache dir; the feed service logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewConsoleLogger returns a stderr console logger for foreground services.
func NewConsoleLogger(level string) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: consoleTimeFormat}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewFileLogger returns a JSON logger appending to
// <user-cache-dir>/photoloop/<name>.log plus a cleanup func closing the
// file. Used by the TUI, which must never write to stdout or stderr.
func NewFileLogger(name, level string) (zerolog.Logger, func(), error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("finding cache dir: %w", err)
	}
	dir := filepath.Join(cacheDir, "photoloop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, name+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := newWriterLogger(f, level)
	cleanup := func() { _ = f.Close() }
	return logger, cleanup, nil
}

func newWriterLogger(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}
