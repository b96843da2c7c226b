package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/internal/wizard"
	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"github.com/Gunvolt24/storage_portal/pkg/validate"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL — верхняя граница жизни сессии, если токен живёт дольше.
const DefaultSessionTTL = 12 * time.Hour

// StorageFactory — клиент бэкенда от имени владельца токена.
type StorageFactory func(token string) ports.StorageAPI

type PortalConfig struct {
	SessionTTL    time.Duration
	Cache         querycache.Options
	SubmitTimeout time.Duration
	Now           func() time.Time
}

// Portal — сессии и их рабочие пространства (кэш + мастер).
type Portal struct {
	store     ports.SessionStore
	storage   StorageFactory
	validator ports.DraftValidator
	log       ports.Logger
	cfg       PortalConfig

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewPortal — DI-конструктор.
func NewPortal(store ports.SessionStore, storage StorageFactory, validator ports.DraftValidator, log ports.Logger, cfg PortalConfig) *Portal {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Cache.Now == nil {
		cfg.Cache.Now = cfg.Now
	}
	if cfg.Cache.Logger == nil {
		cfg.Cache.Logger = log
	}
	return &Portal{
		store:      store,
		storage:    storage,
		validator:  validator,
		log:        log,
		cfg:        cfg,
		workspaces: make(map[string]*Workspace),
	}
}

// Establish — заводит сессию по access token провайдера идентификации.
// Подпись не проверяется: её проверяет бэкенд на каждом запросе, здесь нужны sub и exp.
func (p *Portal) Establish(ctx context.Context, accessToken string) (*domain.Session, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", domain.ErrUnauthorized)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: malformed access token", domain.ErrUnauthorized)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: access token has no subject", domain.ErrUnauthorized)
	}

	now := p.cfg.Now()
	expiresAt := now.Add(p.cfg.SessionTTL)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if !now.Before(exp.Time) {
			return nil, fmt.Errorf("%w: access token expired", domain.ErrUnauthorized)
		}
		if exp.Time.Before(expiresAt) {
			expiresAt = exp.Time
		}
	}

	s := &domain.Session{
		ID:          uuid.NewString(),
		UserID:      sub,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt.UTC(),
		CreatedAt:   now.UTC(),
	}
	if err := p.store.Create(ctx, s); err != nil {
		p.log.Errorf(ctx, "failed to save session: user_id=%s err=%v", sub, err)
		return nil, fmt.Errorf("create session: %w", err)
	}
	p.log.Infof(ctx, "session established: session_id=%s user_id=%s", s.ID, sub)
	return s, nil
}

// Workspace — рабочее пространство сессии; поднимается из хранилища при первом обращении.
func (p *Portal) Workspace(ctx context.Context, sid string) (*Workspace, error) {
	if sid == "" {
		return nil, domain.ErrUnauthorized
	}
	now := p.cfg.Now()

	p.mu.Lock()
	if ws, ok := p.workspaces[sid]; ok {
		s := ws.Session()
		if !s.Expired(now) {
			p.mu.Unlock()
			return ws, nil
		}
		p.dropLocked(sid)
		p.mu.Unlock()
		if err := p.store.Delete(ctx, sid); err != nil {
			p.log.Warnf(ctx, "failed to delete expired session: session_id=%s err=%v", sid, err)
		}
		return nil, fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
	}
	p.mu.Unlock()

	s, err := p.store.Get(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, domain.ErrUnauthorized
	}
	if s.Expired(now) {
		if err := p.store.Delete(ctx, sid); err != nil {
			p.log.Warnf(ctx, "failed to delete expired session: session_id=%s err=%v", sid, err)
		}
		return nil, fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
	}

	ws := newWorkspace(*s, p.storage(s.AccessToken), p.cfg.Cache, wizard.Options{
		Validator:     p.validator,
		Logger:        p.log,
		Now:           p.cfg.Now,
		SubmitTimeout: p.cfg.SubmitTimeout,
	}, p.log)

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.workspaces[sid]; ok {
		return existing, nil
	}
	p.workspaces[sid] = ws
	metrics.ActiveSessions.Inc()
	return ws, nil
}

// Logout — удаляет сессию вместе с кэшем и черновиком.
func (p *Portal) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	p.mu.Lock()
	p.dropLocked(sid)
	p.mu.Unlock()

	if err := p.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	p.log.Infof(ctx, "session closed: session_id=%s", sid)
	return nil
}

// ApplyRemoteChange — помечает устаревшими данные пользователя, изменённые на стороне бэкенда.
// Невалидное событие возвращается как validate.ErrInvalidEvent.
func (p *Portal) ApplyRemoteChange(ctx context.Context, raw []byte) error {
	ev, err := validate.DecodeEvent(raw)
	if err != nil {
		return err
	}
	keys := KeysForEvent(ev)
	if len(keys) == 0 {
		return nil
	}

	p.mu.Lock()
	var targets []*Workspace
	for _, ws := range p.workspaces {
		if ws.session.UserID == ev.UserID {
			targets = append(targets, ws)
		}
	}
	p.mu.Unlock()

	n := 0
	for _, ws := range targets {
		n += ws.cache.Invalidate(keys...)
	}
	p.log.Debugf(ctx, "remote change applied: type=%s user_id=%s sessions=%d entries=%d",
		ev.Type, ev.UserID, len(targets), n)
	return nil
}

// PurgeExpired — чистит просроченные сессии в хранилище и в памяти.
func (p *Portal) PurgeExpired(ctx context.Context) (int64, error) {
	now := p.cfg.Now()

	p.mu.Lock()
	for sid, ws := range p.workspaces {
		s := ws.Session()
		if s.Expired(now) {
			p.dropLocked(sid)
		}
	}
	p.mu.Unlock()

	n, err := p.store.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		p.log.Infof(ctx, "expired sessions purged: count=%d", n)
	}
	return n, nil
}

// Shutdown — закрывает все рабочие пространства процесса. Сессии в хранилище остаются.
func (p *Portal) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for sid := range p.workspaces {
		p.dropLocked(sid)
	}
}

func (p *Portal) dropLocked(sid string) {
	ws, ok := p.workspaces[sid]
	if !ok {
		return
	}
	delete(p.workspaces, sid)
	ws.close()
	metrics.ActiveSessions.Dec()
}

// IsUnauthorized — true для ошибок, после которых сессию нужно завести заново.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
