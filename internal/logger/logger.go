// Package logger provides the process-wide structured logger.
//
// It wraps log/slog with a small configuration surface (level, format,
// output destination) so the rest of the codebase can log through
// package-level functions without threading a logger through every
// constructor.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	output  io.Writer = os.Stdout
	format            = "text"
	slogger           = newLogger(os.Stdout, "text")
)

func newLogger(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init initializes the logger with the given configuration.
// Output can be "stdout", "stderr", or a file path; files are opened
// in append mode.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
		}
		output = f
	}

	if cfg.Format != "" {
		format = strings.ToLower(cfg.Format)
	}

	if cfg.Level != "" {
		if err := setLevel(cfg.Level); err != nil {
			return err
		}
	}

	slogger = newLogger(output, format)
	return nil
}

// SetLevel changes the minimum log level at runtime.
func SetLevel(levelName string) error {
	mu.Lock()
	defer mu.Unlock()
	return setLevel(levelName)
}

func setLevel(levelName string) error {
	switch strings.ToUpper(levelName) {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "INFO":
		level.Set(slog.LevelInfo)
	case "WARN":
		level.Set(slog.LevelWarn)
	case "ERROR":
		level.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", levelName)
	}
	return nil
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug logs at DEBUG level with structured key-value pairs.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs at INFO level with structured key-value pairs.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs at WARN level with structured key-value pairs.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs at ERROR level with structured key-value pairs.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}
