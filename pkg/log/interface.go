// Package log provides a structured logging interface for eslgo computations.
//
// The interface is slog-compatible so that the numerical packages (linear,
// subset, evaluation) can emit structured records without depending on a
// concrete backend. The CLI plugs in the zerolog-backed provider; library
// callers that pass no logger get Nop, which discards everything.
//
// Example usage:
//
//	logger := log.NewZerologProvider(os.Stderr, log.LevelInfo).GetLogger().With(
//	    log.ModelNameKey, "BestSubset",
//	)
//	logger.Info("search finished",
//	    log.SubsetSizeKey, 2,
//	    log.RSSKey, 29.43,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. Keys should be the
// constants from attributes.go so that records stay filterable.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Library code logs per-subset progress at this level only.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// Pass the error itself under ErrAttrKey so handlers can attach a stack trace.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
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

// LoggerProvider hands out loggers sharing one backend and level.
type LoggerProvider interface {
	// GetLogger returns the root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel changes the minimum level for all loggers of this provider.
	SetLevel(level Level)
}

type nopLogger struct{}

// Nop returns a Logger that discards every record.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any)                {}
func (nopLogger) Info(string, ...any)                 {}
func (nopLogger) Warn(string, ...any)                 {}
func (nopLogger) Error(string, ...any)                {}
func (n nopLogger) With(...any) Logger                { return n }
func (nopLogger) Enabled(context.Context, Level) bool { return false }
