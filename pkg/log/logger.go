package log

import (
	"context"
	"io"
	"log/slog"

	esterrors "github.com/YuminosukeSato/eslgo/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SetupLogger builds a JSON slog logger writing to w, wraps it with
// ErrFmtHandler and installs it as the slog default.
func SetupLogger(w io.Writer, loglevel string) (*slog.Logger, error) {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return nil, err
	}
	ops := slog.HandlerOptions{
		AddSource: level == LevelDebug,
		Level:     slog.Level(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			}
			return attr
		},
	}
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops)))
	slog.SetDefault(logger)
	return logger, nil
}

// ParseLevel converts a level name into a Level.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, esterrors.NewInvalidParameterError("log.ParseLevel", "level", level,
			"must be one of debug, info, warn, error")
	}
}

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps l. A nil l uses slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

func (s *SlogLogger) Debug(msg string, fields ...any) { s.logger.Debug(msg, fields...) }
func (s *SlogLogger) Info(msg string, fields ...any)  { s.logger.Info(msg, fields...) }
func (s *SlogLogger) Warn(msg string, fields ...any)  { s.logger.Warn(msg, fields...) }
func (s *SlogLogger) Error(msg string, fields ...any) { s.logger.Error(msg, fields...) }

func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: s.logger.With(fields...)}
}

func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger.Enabled(ctx, slog.Level(level))
}
