// Пакет ctxmeta — метаданные запроса в context.Context:
// request_id, серверная сессия, пользователь и идентификаторы трейса.
// HTTP-слой и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeySessionID ctxKey = "session_id"
	KeyUserID    ctxKey = "user_id"
)

// Trace — идентификаторы активного спана в виде строк для логов.
type Trace struct {
	TraceID string
	SpanID  string
}

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithSessionID — идентификатор серверной сессии, не токен.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return withString(ctx, KeySessionID, sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeySessionID)
}

// WithUserID — владелец сессии (sub из токена).
func WithUserID(ctx context.Context, userID string) context.Context {
	return withString(ctx, KeyUserID, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyUserID)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
