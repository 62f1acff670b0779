package repel

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// The library runs inside a host program that owns the terminal, so nothing
// is ever logged to stdout or stderr. Without a log file records are dropped.

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
}

// newLogger builds the logger for one call. The returned closer releases the
// log file, if any.
func newLogger(cfg *Config) (*slog.Logger, io.Closer, error) {
	if cfg == nil || cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(f, opts)
	} else {
		handler = slog.NewTextHandler(f, opts)
	}
	return slog.New(handler), f, nil
}

// withSession tags every record of one call with a fresh session id.
func withSession(logger *slog.Logger) *slog.Logger {
	return logger.With("session", uuid.NewString())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
