package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
)

type (
	ctxRequestIDKey struct{}
	ctxLoggerKey    struct{}
	ctxTimeKey      struct{}
)

// TimeFunc returns the current time. Tests replace it to pin timestamps.
type TimeFunc func() time.Time

func valueOf[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// CtxRequestID returns the request ID in ctx. A new ID is generated and
// attached to the returned context if ctx has none.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := valueOf[types.RequestID](ctx, ctxRequestIDKey{}); ok {
		return id, ctx
	}

	id := types.NewRequestID()
	return id, context.WithValue(ctx, ctxRequestIDKey{}, id)
}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger in ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := valueOf[*slog.Logger](ctx, ctxLoggerKey{}); ok {
		return l
	}
	return defaultLogger
}

// CtxTime returns the time given by the TimeFunc in ctx, or time.Now().
func CtxTime(ctx context.Context) time.Time {
	if fn, ok := valueOf[TimeFunc](ctx, ctxTimeKey{}); ok {
		return fn()
	}
	return time.Now()
}

func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}
