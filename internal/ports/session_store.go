package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

// SessionStore — хранилище серверных сессий.
// Get возвращает (nil, nil), если сессии нет.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
