package ports

import "context"

// Logger — логгер слоёв приложения; поля запроса (request_id, session_id, user_id)
// реализация берёт из ctx.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
