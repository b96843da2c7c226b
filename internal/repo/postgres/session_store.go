package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что SessionStore удовлетворяет интерфейсу ports.SessionStore.
var _ ports.SessionStore = (*SessionStore)(nil)

const sessionsTable = "sessions"

// SessionStore — серверные сессии в Postgres (pgxpool + squirrel).
type SessionStore struct {
	pool *pgxpool.Pool
	sq   squirrel.StatementBuilderType
}

func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{
		pool: pool,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create — сохраняет сессию; повторный id перезаписывает токен и срок.
func (r *SessionStore) Create(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session is empty or id is required")
	}
	if s.UserID == "" {
		return errors.New("user_id is required")
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := r.sq.Insert(sessionsTable).
		Columns("id", "user_id", "access_token", "expires_at", "created_at").
		Values(s.ID, s.UserID, s.AccessToken, s.ExpiresAt, createdAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			access_token = EXCLUDED.access_token,
			expires_at = EXCLUDED.expires_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert session: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get — сессия по id. Если не нашли, возвращает (nil, nil).
func (r *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	query, args, err := r.sq.Select("id", "user_id", "access_token", "expires_at", "created_at").
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select session: %w", err)
	}

	var s domain.Session
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.UserID, &s.AccessToken, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

func (r *SessionStore) Delete(ctx context.Context, id string) error {
	query, args, err := r.sq.Delete(sessionsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete session: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired — удаляет сессии с expires_at <= now, возвращает их число.
func (r *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.sq.Delete(sessionsTable).Where(squirrel.LtOrEq{"expires_at": now}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired: %w", err)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
