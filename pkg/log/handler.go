package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	esterrors "github.com/YuminosukeSato/eslgo/pkg/errors"
)

// ErrFmtHandler is a slog handler that expands errors logged under ErrAttrKey
// into a stacktrace attribute and a stable error code.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler so error records carry stacktrace and
// error.code attributes.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var logged error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				logged = err
			}
			return false
		}
		return true
	})
	if logged != nil {
		if stacktrace := extractStacktrace(logged); stacktrace != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
		}
		if code := ErrorCode(logged); code != "" {
			r.AddAttrs(slog.String(ErrorCodeKey, code))
		}
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// ErrorCode maps the typed errors of pkg/errors to the ErrorXxx codes.
// Unknown errors map to "".
func ErrorCode(err error) string {
	var (
		dimErr    *esterrors.DimensionalityError
		paramErr  *esterrors.InvalidParameterError
		schemaErr *esterrors.SchemaMismatchError
		shapeErr  *esterrors.DimensionError
	)
	switch {
	case esterrors.Is(err, esterrors.ErrSingularMatrix):
		return ErrorSingularMatrix
	case esterrors.As(err, &dimErr):
		return ErrorDimensionality
	case esterrors.As(err, &paramErr):
		return ErrorInvalidParam
	case esterrors.As(err, &schemaErr):
		return ErrorSchemaMismatch
	case esterrors.As(err, &shapeErr):
		return ErrorDimensionMismatch
	}
	return ""
}
