package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/internal/ports/mocks"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/internal/usecase"
	"github.com/Gunvolt24/storage_portal/pkg/validate"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var testNow = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

type portalFixture struct {
	store  *mocks.MockSessionStore
	api    *mocks.MockStorageAPI
	portal *usecase.Portal
	tokens []string
}

func newPortal(t *testing.T) *portalFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &portalFixture{
		store: mocks.NewMockSessionStore(ctrl),
		api:   mocks.NewMockStorageAPI(ctrl),
	}
	factory := func(tok string) ports.StorageAPI {
		f.tokens = append(f.tokens, tok)
		return f.api
	}
	f.portal = usecase.NewPortal(f.store, factory, validate.NewDraftValidator(), noopLogger{}, usecase.PortalConfig{
		SessionTTL: time.Hour,
		Cache:      querycache.Options{RetryDelay: -1},
		Now:        func() time.Time { return testNow },
	})
	return f
}

func session(id, user string) *domain.Session {
	return &domain.Session{ID: id, UserID: user, AccessToken: "tok-" + user, ExpiresAt: testNow.Add(time.Hour)}
}

func TestEstablish(t *testing.T) {
	t.Run("session capped by token expiry", func(t *testing.T) {
		f := newPortal(t)
		exp := testNow.Add(10 * time.Minute)
		tok := token(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})

		var saved *domain.Session
		f.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s *domain.Session) error { saved = s; return nil })

		s, err := f.portal.Establish(context.Background(), tok)
		require.NoError(t, err)
		require.Same(t, saved, s)
		require.Equal(t, "user-1", s.UserID)
		require.Equal(t, tok, s.AccessToken)
		require.Equal(t, exp.Unix(), s.ExpiresAt.Unix())
		require.NotEmpty(t, s.ID)
	})

	t.Run("session capped by ttl", func(t *testing.T) {
		f := newPortal(t)
		tok := token(t, jwt.MapClaims{"sub": "user-1", "exp": testNow.Add(48 * time.Hour).Unix()})
		f.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		s, err := f.portal.Establish(context.Background(), tok)
		require.NoError(t, err)
		require.Equal(t, testNow.Add(time.Hour), s.ExpiresAt)
	})

	t.Run("rejected tokens", func(t *testing.T) {
		cases := map[string]string{
			"empty":     "",
			"malformed": "not.a.jwt",
			"no sub":    token(t, jwt.MapClaims{"exp": testNow.Add(time.Hour).Unix()}),
			"expired":   token(t, jwt.MapClaims{"sub": "u", "exp": testNow.Add(-time.Minute).Unix()}),
		}
		for name, tok := range cases {
			t.Run(name, func(t *testing.T) {
				f := newPortal(t)
				_, err := f.portal.Establish(context.Background(), tok)
				require.ErrorIs(t, err, domain.ErrUnauthorized)
			})
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f := newPortal(t)
		f.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		_, err := f.portal.Establish(context.Background(), token(t, jwt.MapClaims{"sub": "u"}))
		require.Error(t, err)
		require.False(t, usecase.IsUnauthorized(err))
	})
}

func TestWorkspace_LoadsOnceAndCaches(t *testing.T) {
	f := newPortal(t)
	f.store.EXPECT().Get(gomock.Any(), "sid-1").Return(session("sid-1", "user-1"), nil).Times(1)

	ws, err := f.portal.Workspace(context.Background(), "sid-1")
	require.NoError(t, err)
	again, err := f.portal.Workspace(context.Background(), "sid-1")
	require.NoError(t, err)

	require.Same(t, ws, again)
	require.Equal(t, []string{"tok-user-1"}, f.tokens)
	require.Equal(t, "user-1", ws.Session().UserID)
}

func TestWorkspace_Unauthorized(t *testing.T) {
	t.Run("no sid", func(t *testing.T) {
		f := newPortal(t)
		_, err := f.portal.Workspace(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newPortal(t)
		f.store.EXPECT().Get(gomock.Any(), "nope").Return(nil, nil)
		_, err := f.portal.Workspace(context.Background(), "nope")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired session deleted", func(t *testing.T) {
		f := newPortal(t)
		s := session("old", "u")
		s.ExpiresAt = testNow.Add(-time.Second)
		gomock.InOrder(
			f.store.EXPECT().Get(gomock.Any(), "old").Return(s, nil),
			f.store.EXPECT().Delete(gomock.Any(), "old").Return(nil),
		)
		_, err := f.portal.Workspace(context.Background(), "old")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("store error is not unauthorized", func(t *testing.T) {
		f := newPortal(t)
		f.store.EXPECT().Get(gomock.Any(), "sid").Return(nil, errors.New("db down"))
		_, err := f.portal.Workspace(context.Background(), "sid")
		require.Error(t, err)
		require.False(t, usecase.IsUnauthorized(err))
	})
}

type warnRecorder struct {
	noopLogger
	warns []string
}

func (r *warnRecorder) Warnf(_ context.Context, format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func TestWorkspace_ExpiredInMemoryDeleteFailureLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	api := mocks.NewMockStorageAPI(ctrl)
	log := &warnRecorder{}
	now := testNow
	portal := usecase.NewPortal(store, func(string) ports.StorageAPI { return api }, validate.NewDraftValidator(), log, usecase.PortalConfig{
		SessionTTL: time.Hour,
		Cache:      querycache.Options{RetryDelay: -1},
		Now:        func() time.Time { return now },
	})

	store.EXPECT().Get(gomock.Any(), "sid-1").Return(session("sid-1", "user-1"), nil)
	_, err := portal.Workspace(context.Background(), "sid-1")
	require.NoError(t, err)

	now = testNow.Add(2 * time.Hour)
	store.EXPECT().Delete(gomock.Any(), "sid-1").Return(errors.New("db down"))
	_, err = portal.Workspace(context.Background(), "sid-1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.Len(t, log.warns, 1)
	require.Contains(t, log.warns[0], "session_id=sid-1")
	require.Contains(t, log.warns[0], "db down")
}

func TestLogout_DropsWorkspace(t *testing.T) {
	f := newPortal(t)
	ctx := context.Background()
	f.store.EXPECT().Get(gomock.Any(), "sid-1").Return(session("sid-1", "user-1"), nil).Times(2)
	f.store.EXPECT().Delete(gomock.Any(), "sid-1").Return(nil)
	f.api.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{ID: "user-1"}, nil)

	ws, err := f.portal.Workspace(ctx, "sid-1")
	require.NoError(t, err)
	_, err = ws.Profile(ctx)
	require.NoError(t, err)
	ws.OpenWizard(ctx)
	require.Equal(t, 1, ws.Cache().Len())

	require.NoError(t, f.portal.Logout(ctx, "sid-1"))
	require.Zero(t, ws.Cache().Len())
	require.False(t, ws.Wizard().View().Open)

	// следующий запрос поднимает новое пространство из хранилища
	next, err := f.portal.Workspace(ctx, "sid-1")
	require.NoError(t, err)
	require.NotSame(t, ws, next)
}

func TestApplyRemoteChange_ScopedToUser(t *testing.T) {
	f := newPortal(t)
	ctx := context.Background()
	f.store.EXPECT().Get(gomock.Any(), "a").Return(session("a", "user-1"), nil)
	f.store.EXPECT().Get(gomock.Any(), "b").Return(session("b", "user-2"), nil)
	f.api.EXPECT().ListBoxes(gomock.Any()).Return(&domain.BoxList{}, nil).Times(2)
	f.api.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{}, nil).Times(2)

	wsA, err := f.portal.Workspace(ctx, "a")
	require.NoError(t, err)
	wsB, err := f.portal.Workspace(ctx, "b")
	require.NoError(t, err)
	for _, ws := range []*usecase.Workspace{wsA, wsB} {
		_, err = ws.Boxes(ctx)
		require.NoError(t, err)
		_, err = ws.Profile(ctx)
		require.NoError(t, err)
	}

	err = f.portal.ApplyRemoteChange(ctx, []byte(`{"type":"box.status_changed","user_id":"user-1","resource_id":"b-1"}`))
	require.NoError(t, err)

	boxesA, _ := wsA.Cache().Snapshot(querycache.NewKey(querycache.ResourceBoxes, "list"))
	profileA, _ := wsA.Cache().Snapshot(querycache.NewKey(querycache.ResourceUser, "me"))
	boxesB, _ := wsB.Cache().Snapshot(querycache.NewKey(querycache.ResourceBoxes, "list"))
	require.True(t, boxesA.Stale)
	require.False(t, profileA.Stale)
	require.False(t, boxesB.Stale)
}

func TestApplyRemoteChange_InvalidEvent(t *testing.T) {
	f := newPortal(t)
	for _, raw := range []string{`{`, `{"type":"box.updated"}`, `{"type":"unknown","user_id":"u"}`} {
		err := f.portal.ApplyRemoteChange(context.Background(), []byte(raw))
		require.ErrorIs(t, err, validate.ErrInvalidEvent, raw)
	}
}

func TestPurgeExpired(t *testing.T) {
	f := newPortal(t)
	ctx := context.Background()
	f.store.EXPECT().Get(gomock.Any(), "sid").Return(session("sid", "u"), nil)
	f.store.EXPECT().DeleteExpired(gomock.Any(), testNow).Return(int64(3), nil)

	_, err := f.portal.Workspace(ctx, "sid")
	require.NoError(t, err)

	n, err := f.portal.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	// живая сессия осталась в памяти: повторного Get нет
	_, err = f.portal.Workspace(ctx, "sid")
	require.NoError(t, err)
}

func TestKeysForEvent(t *testing.T) {
	cases := []struct {
		ev   domain.ResourceEvent
		want []querycache.Key
	}{
		{domain.ResourceEvent{Type: domain.EventBoxUpdated, ResourceID: "b-1"},
			[]querycache.Key{querycache.NewKey(querycache.ResourceBoxes, "list"), querycache.NewKey(querycache.ResourceBoxes, "id", "b-1")}},
		{domain.ResourceEvent{Type: domain.EventBoxStatusChanged},
			[]querycache.Key{querycache.AnyOf(querycache.ResourceBoxes)}},
		{domain.ResourceEvent{Type: domain.EventOrderUpdated, ResourceID: "o-1"},
			[]querycache.Key{querycache.AnyOf(querycache.ResourceOrders)}},
		{domain.ResourceEvent{Type: domain.EventSlotsChanged},
			[]querycache.Key{querycache.AnyOf(querycache.ResourceSlots)}},
		{domain.ResourceEvent{Type: domain.EventSubscription},
			[]querycache.Key{querycache.AnyOf(querycache.ResourceSubscription), querycache.NewKey(querycache.ResourceUser, "me")}},
		{domain.ResourceEvent{Type: "other"}, nil},
	}
	for _, tc := range cases {
		ev := tc.ev
		require.Equal(t, tc.want, usecase.KeysForEvent(&ev), string(tc.ev.Type))
	}
}
