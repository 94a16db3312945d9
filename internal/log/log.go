// Package log provides structured logging for the Cryptbook client.
// By default, logging is disabled (null logger) so library packages can log
// unconditionally. Enable it with SetLogger, usually from config at startup.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Strings creates a string slice field.
func Strings(key string, value []string) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

// nullLogger is a no-op logger that discards all output.
type nullLogger struct{}

func (n *nullLogger) Debug(msg string, fields ...Field) {}
func (n *nullLogger) Info(msg string, fields ...Field)  {}
func (n *nullLogger) Warn(msg string, fields ...Field)  {}
func (n *nullLogger) Error(msg string, fields ...Field) {}
func (n *nullLogger) WithFields(fields ...Field) Logger { return n }

// slogLogger forwards fields to a log/slog handler.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an existing slog.Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

// NewTextLogger writes key=value lines to out, dropping records below level.
func NewTextLogger(out io.Writer, level Level) Logger {
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level.slog()})
	return &slogLogger{l: slog.New(h)}
}

func attrs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

func (s *slogLogger) log(level Level, msg string, fields []Field) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level.slog()) {
		return
	}
	s.l.Log(ctx, level.slog(), msg, attrs(fields)...)
}

func (s *slogLogger) Debug(msg string, fields ...Field) {
	s.log(LevelDebug, msg, fields)
}

func (s *slogLogger) Info(msg string, fields ...Field) {
	s.log(LevelInfo, msg, fields)
}

func (s *slogLogger) Warn(msg string, fields ...Field) {
	s.log(LevelWarn, msg, fields)
}

func (s *slogLogger) Error(msg string, fields ...Field) {
	s.log(LevelError, msg, fields)
}

func (s *slogLogger) WithFields(fields ...Field) Logger {
	return &slogLogger{l: s.l.With(attrs(fields)...)}
}

// Package-level logger (null by default)
var (
	defaultLogger Logger = &nullLogger{}
	loggerMu      sync.RWMutex
)

// SetLogger sets the package-level logger.
// Call with nil to disable logging.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		defaultLogger = &nullLogger{}
	} else {
		defaultLogger = l
	}
}

// GetLogger returns the current package-level logger.
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// Setup installs a text logger at the given level, writing to path when it is
// non-empty and to stderr otherwise. The returned close func releases the file.
func Setup(level Level, path string) (func() error, error) {
	if path == "" {
		SetLogger(NewTextLogger(os.Stderr, level))
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	SetLogger(NewTextLogger(f, level))
	return f.Close, nil
}

// Debug logs a debug message.
func Debug(msg string, fields ...Field) {
	GetLogger().Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...Field) {
	GetLogger().Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...Field) {
	GetLogger().Error(msg, fields...)
}

// With returns a child of the package-level logger carrying fields.
func With(fields ...Field) Logger {
	return GetLogger().WithFields(fields...)
}
