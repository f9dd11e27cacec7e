// Package logger defines a structured application logging system for server
// runtimes.
//
// This package provides a logging abstraction that supports:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured payloads, tags, and per-logger context maps
// - Tag-based filtering and probabilistic sampling
// - Color-coded output for terminal readability with automatic TTY detection
// - Multiple output formats (text, JSON, and colorized text)
// - Log file output with size- and time-based rotation and compression
// - Bounded performance-timer tracking for operation timing
// - Console redirection so global console writes flow through a Logger
//
// The core Logger interface defined in this package serves as the foundation
// for all logging operations. Concrete implementations of this interface are
// provided by the adapter package.
//
// Basic usage:
//
//	// Create a logger with default configuration
//	log, err := adapter.New(ctx, logger.DefaultConfig())
//	if err != nil {
//		panic(err)
//	}
//
//	// Log messages at different levels
//	log.Info("application started")
//	log.Error("operation failed", map[string]any{"code": 500})
//
// Always call Close() before application exit to release file handles and
// stop rotation timers:
//
//	defer log.Close()
package logger

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity of a log message. Levels are ordered:
// Debug < Info < Warn < Error < Fatal.
type Level uint8

const (
	// DebugLevel represents debugging information.
	DebugLevel Level = iota
	// InfoLevel represents general operational information.
	InfoLevel
	// WarnLevel represents warning messages.
	WarnLevel
	// ErrorLevel represents error messages.
	ErrorLevel
	// FatalLevel represents fatal error messages.
	FatalLevel
)

// String returns the lowercase string representation of a log level, as used
// in JSON output and configuration files.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return "unknown"
	}
}

// Label returns the uppercase level label used in text output, e.g. "ERROR".
func (l Level) Label() string {
	return strings.ToUpper(l.String())
}

// IsValid returns true if the given Level is a valid log level.
func (l Level) IsValid() bool {
	return l <= FatalLevel
}

// ParseLevel parses a log level string into a Level. The comparison is
// case-insensitive and accepts "warning" as an alias for "warn".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, ewrap.New("invalid log level: " + level)
	}
}

// Logger defines the interface for logging operations.
type Logger interface {
	// Severity methods. The optional trailing arguments carry a structured
	// payload: a single value is attached as the entry data, a single error
	// is attached as the entry error, and multiple values are collected
	// into a list.
	Debug(msg string, data ...any)
	Info(msg string, data ...any)
	Warn(msg string, data ...any)
	Error(msg string, data ...any)
	Fatal(msg string, data ...any)

	// Formatted log methods
	FormattedLogger

	// Log is the shared entry point behind the severity methods. Call tags
	// are appended to the logger's own tags for this entry only.
	Log(level Level, msg string, data any, err error, tags ...string)

	Methods
}

// Methods defines the configuration, lifecycle, and tracking operations of a
// Logger.
type Methods interface {
	// SetLevel sets the minimum logging level.
	SetLevel(level Level)
	// GetLevel returns the current minimum logging level.
	GetLevel() Level
	// SetContext merges the given keys into the logger context.
	SetContext(ctx map[string]any)
	// GetContext returns a copy of the logger context.
	GetContext() map[string]any
	// AddTag appends a tag unless it is already present.
	AddTag(tag string)
	// RemoveTag removes a tag; absent tags are a no-op.
	RemoveTag(tag string)
	// Tags returns a copy of the logger's tag list.
	Tags() []string
	// SetFilter replaces the filter configuration and rebuilds tag sets.
	SetFilter(filter *FilterConfig)
	// GetFilter returns the current filter configuration.
	GetFilter() *FilterConfig
	// SetSampling replaces the sampling configuration.
	SetSampling(sampling *SamplingConfig)
	// GetSampling returns the current sampling configuration.
	GetSampling() *SamplingConfig
	// Child derives an independent Logger: tags are parent tags plus
	// override tags, context is parent context shallow-merged under the
	// override context, and everything else defaults to the parent's
	// settings. A child with file output owns its own file handle.
	Child(overrides ChildOverrides) Logger
	// StartPerformance records a timer for the named operation and returns
	// an opaque id. Starting more timers than the configured capacity
	// evicts the oldest record.
	StartPerformance(operation string, data map[string]any) string
	// EndPerformance stops the timer with the given id and emits a log
	// entry at the given level. Unknown ids emit a warning instead.
	EndPerformance(id string, level Level)
	// Sync ensures all buffered log output has been written.
	Sync() error
	// Close releases the file handle and stops background rotation.
	// Logging after Close skips file dispatch but never panics.
	Close() error
	// GetConfig returns the logger configuration.
	GetConfig() *Config
}

// FormattedLogger defines the interface for logging formatted messages.
type FormattedLogger interface {
	// Debugf logs a formatted message at the Debug level
	Debugf(format string, args ...any)
	// Infof logs a formatted message at the Info level
	Infof(format string, args ...any)
	// Warnf logs a formatted message at the Warn level
	Warnf(format string, args ...any)
	// Errorf logs a formatted message at the Error level
	Errorf(format string, args ...any)
	// Fatalf logs a formatted message at the Fatal level
	Fatalf(format string, args ...any)
}
