package log

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	esterrors "github.com/YuminosukeSato/eslgo/pkg/errors"
)

// ZerologProvider implements LoggerProvider on top of rs/zerolog.
type ZerologProvider struct {
	mu    sync.RWMutex
	base  zerolog.Logger
	level Level
}

// NewZerologProvider writes JSON records to w. Wrap w with
// zerolog.ConsoleWriter for human-readable output.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{
		base:  zerolog.New(w).With().Timestamp().Logger(),
		level: level,
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{logger: p.base.Level(toZerologLevel(p.level))}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel. Loggers handed out earlier keep
// their level.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// InstallWarnings routes pkg/errors warnings through this provider.
func (p *ZerologProvider) InstallWarnings() {
	logger := p.GetLogger().(*zerologLogger)
	esterrors.SetZerologWarnFunc(func(w error) {
		ev := logger.logger.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.Object("warning", m)
		}
		ev.Msg(w.Error())
	})
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.emit(z.logger.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.emit(z.logger.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.emit(z.logger.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields ...any) { z.emit(z.logger.Error(), msg, fields) }

func (z *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{logger: z.logger.With().Fields(pairs(fields)).Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.logger.GetLevel() <= toZerologLevel(level)
}

// emit writes one record. An error under ErrAttrKey is logged with Err and,
// when it carries one of the typed errors, with its structured detail.
func (z *zerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	var rest []any
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok && key == ErrAttrKey {
			if err, ok := fields[i+1].(error); ok {
				ev = ev.Err(err)
				if code := ErrorCode(err); code != "" {
					ev = ev.Str(ErrorCodeKey, code)
				}
				var m zerolog.LogObjectMarshaler
				if esterrors.As(err, &m) {
					ev = ev.Object("error_detail", m)
				}
				continue
			}
		}
		rest = append(rest, fields[i], fields[i+1])
	}
	if len(rest) > 0 {
		ev = ev.Fields(rest)
	}
	ev.Msg(msg)
}

func pairs(fields []any) []any {
	if len(fields)%2 == 1 {
		return fields[:len(fields)-1]
	}
	return fields
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
