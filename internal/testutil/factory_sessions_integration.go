//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

type SessionOption func(*domain.Session)

func WithUser(userID string) SessionOption {
	return func(s *domain.Session) { s.UserID = userID }
}

func WithExpiry(at time.Time) SessionOption {
	return func(s *domain.Session) { s.ExpiresAt = at }
}

// MakeSession — валидная уникальная сессия, живущая час.
func MakeSession(opts ...SessionOption) domain.Session {
	now := time.Now().UTC().Truncate(time.Microsecond)
	s := domain.Session{
		ID:          "sess-" + UniqSuffix(),
		UserID:      "user-" + UniqSuffix(),
		AccessToken: "tok-" + randHex(16),
		ExpiresAt:   now.Add(time.Hour),
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
