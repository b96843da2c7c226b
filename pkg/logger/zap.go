package logger

import (
	"context"

	"github.com/Gunvolt24/storage_portal/pkg/ctxmeta"
	"go.uber.org/zap"
)

// ZapLogger — ports.Logger поверх zap с полями запроса из контекста.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger — production (json) или development (console) конфигурация.
// Вторым значением возвращается Sync для defer.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	cfg := zap.NewDevelopmentConfig()
	if isProd {
		cfg = zap.NewProductionConfig()
	}
	base, err := cfg.Build(zap.AddCallerSkip(1), zap.Fields(zap.String("service", "storage-portal")))
	if err != nil {
		return nil, nil, err
	}
	return Wrap(base), base.Sync, nil
}

// Wrap — обёртка над готовым zap.Logger (тесты, zaptest/observer).
func Wrap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

// withCtx — request_id, session_id, user_id и trace из контекста, если они есть.
func (z *ZapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	var kv []any
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		kv = append(kv, "request_id", rid)
	}
	if sid, ok := ctxmeta.SessionIDFromContext(ctx); ok {
		kv = append(kv, "session_id", sid)
	}
	if uid, ok := ctxmeta.UserIDFromContext(ctx); ok {
		kv = append(kv, "user_id", uid)
	}
	if tr, ok := ctxmeta.TraceFromContext(ctx); ok {
		kv = append(kv, "trace_id", tr.TraceID, "span_id", tr.SpanID)
	}
	if len(kv) == 0 {
		return z.sugar
	}
	return z.sugar.With(kv...)
}

func (z *ZapLogger) Debugf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Debugf(format, args...)
}
func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger { return z.base }
