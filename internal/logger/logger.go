// Package logger wraps log/slog with package-level helpers, fanning records
// out to the console and an optional rotating log file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	logger  *slog.Logger
	closers []io.Closer
)

// Initialize sets up the logger with the provided configuration. Console
// output goes to stderr so it never mixes with a terminal frame.
func Initialize(config Config) error {
	return initialize(config, os.Stderr)
}

func initialize(config Config, console io.Writer) error {
	var handlers []slog.Handler
	var files []io.Closer

	level := parseLogLevel(config.Level)
	opts := &slog.HandlerOptions{Level: level}

	if config.ConsoleEnabled {
		handlers = append(handlers, newHandler(console, config.ConsoleFormat, opts))
	}

	if config.FileEnabled {
		if config.FilePath == "" {
			return fmt.Errorf("file logging enabled without a file path")
		}
		logFile := &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.FileMaxSizeMB,
			MaxBackups: config.FileMaxBackups,
			MaxAge:     config.FileMaxAgeDays,
		}
		files = append(files, logFile)
		handlers = append(handlers, newHandler(logFile, config.FileFormat, opts))
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(console, opts))
	}

	var l *slog.Logger
	if len(handlers) == 1 {
		l = slog.New(handlers[0])
	} else {
		l = slog.New(newMultiHandler(handlers...))
	}

	mu.Lock()
	previous := closers
	logger = l
	closers = files
	mu.Unlock()

	for _, c := range previous {
		c.Close()
	}
	return nil
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Close flushes and releases any open log files
func Close() error {
	mu.Lock()
	files := closers
	closers = nil
	mu.Unlock()

	var first error
	for _, c := range files {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Logger returns the underlying slog logger, or a discarding one before
// Initialize has been called.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if l := current(); l != nil {
		l.Debug(msg, args...)
	}
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...any) {
	Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func Info(msg string, args ...any) {
	if l := current(); l != nil {
		l.Info(msg, args...)
	}
}

// Infof logs a formatted info message
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Warning logs a warning message
func Warning(msg string, args ...any) {
	if l := current(); l != nil {
		l.Warn(msg, args...)
	}
}

// Warningf logs a formatted warning message
func Warningf(format string, args ...any) {
	Warning(fmt.Sprintf(format, args...))
}

// Error logs an error message
func Error(msg string, args ...any) {
	if l := current(); l != nil {
		l.Error(msg, args...)
	}
}

// Errorf logs a formatted error message
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Fatalf logs at error level, closes log files and exits with status 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l := current(); l != nil {
		l.Error(msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	Close()
	os.Exit(1)
}

// multiHandler writes every record to each handler enabled for its level
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return newMultiHandler(handlers...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return newMultiHandler(handlers...)
}
