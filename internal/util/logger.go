// internal/util/logger.go
package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LogConfig selects the handler and level of the global logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json (default) or text
}

var logger *slog.Logger

// InitLogger initializes the global structured logger.
// JSON goes to stdout for production-like logs; "text" uses a colored tint
// handler on stderr for local development.
func InitLogger(cfg LogConfig) {
	logger = NewLogger(cfg, os.Stdout, os.Stderr)
	slog.SetDefault(logger)
}

// NewLogger builds a logger without touching the global default.
func NewLogger(cfg LogConfig, stdout, stderr io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = tint.NewHandler(stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	} else {
		handler = slog.NewJSONHandler(stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		})
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogger returns the initialized global logger.
func GetLogger() *slog.Logger {
	if logger == nil {
		InitLogger(LogConfig{}) // Should be called explicitly at app start
	}
	return logger
}

// DiscardLogger returns a logger that drops everything, for tests.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
