package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/internal/usecase"
	"github.com/Gunvolt24/storage_portal/internal/wizard"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func openWorkspace(t *testing.T) (*portalFixture, *usecase.Workspace) {
	t.Helper()
	f := newPortal(t)
	f.store.EXPECT().Get(gomock.Any(), "sid").Return(session("sid", "user-1"), nil)
	ws, err := f.portal.Workspace(context.Background(), "sid")
	require.NoError(t, err)
	return f, ws
}

func TestWorkspace_ReadsAreCached(t *testing.T) {
	f, ws := openWorkspace(t)
	ctx := context.Background()
	filter := domain.OrderFilter{Status: "pending", Limit: 20}

	f.api.EXPECT().GetBox(gomock.Any(), "b-1").Return(&domain.Box{ID: "b-1"}, nil).Times(1)
	f.api.EXPECT().ListOrders(gomock.Any(), filter).Return(&domain.OrderList{Total: 2}, nil).Times(1)
	f.api.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{Limit: 20}).Return(&domain.OrderList{}, nil).Times(1)

	for range 3 {
		box, err := ws.Box(ctx, "b-1")
		require.NoError(t, err)
		require.Equal(t, "b-1", box.ID)

		list, err := ws.Orders(ctx, filter)
		require.NoError(t, err)
		require.Equal(t, 2, list.Total)
	}

	// другой фильтр — другой ключ
	_, err := ws.Orders(ctx, domain.OrderFilter{Limit: 20})
	require.NoError(t, err)
}

func TestWorkspace_UpdateBoxInvalidatesOnlyBoxes(t *testing.T) {
	f, ws := openWorkspace(t)
	ctx := context.Background()
	label := "winter clothes"

	f.api.EXPECT().ListBoxes(gomock.Any()).Return(&domain.BoxList{Boxes: []domain.Box{{ID: "b-1"}}}, nil)
	f.api.EXPECT().GetBox(gomock.Any(), "b-2").Return(&domain.Box{ID: "b-2"}, nil)
	f.api.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{ID: "user-1"}, nil)
	f.api.EXPECT().UpdateBox(gomock.Any(), "b-1", domain.BoxPatch{Label: &label}).
		Return(&domain.Box{ID: "b-1", Label: label}, nil)

	_, _ = ws.Boxes(ctx)
	_, _ = ws.Box(ctx, "b-2")
	_, _ = ws.Profile(ctx)

	box, err := ws.UpdateBox(ctx, "b-1", domain.BoxPatch{Label: &label})
	require.NoError(t, err)
	require.Equal(t, label, box.Label)

	list, _ := ws.Cache().Snapshot(querycache.NewKey(querycache.ResourceBoxes, "list"))
	other, _ := ws.Cache().Snapshot(querycache.NewKey(querycache.ResourceBoxes, "id", "b-2"))
	profile, _ := ws.Cache().Snapshot(querycache.NewKey(querycache.ResourceUser, "me"))
	require.True(t, list.Stale)
	require.False(t, other.Stale)
	require.False(t, profile.Stale)
}

func TestWorkspace_FailedMutationKeepsCache(t *testing.T) {
	f, ws := openWorkspace(t)
	ctx := context.Background()

	f.api.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Return(&domain.OrderList{Total: 1}, nil)
	f.api.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewUpstreamError(http.StatusConflict, "slot is full"))

	_, err := ws.Orders(ctx, domain.OrderFilter{Limit: 20})
	require.NoError(t, err)

	_, err = ws.CreateOrder(ctx, domain.CreateOrderRequest{Quantity: 1})
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "slot is full", apiErr.Message)

	snap, _ := ws.Cache().Snapshot(querycache.NewKey(querycache.ResourceOrders, "list", "status=&limit=20&offset=0"))
	require.True(t, snap.HasData)
	require.False(t, snap.Stale)
}

func TestWorkspace_SubscriptionPassThrough(t *testing.T) {
	f, ws := openWorkspace(t)
	ctx := context.Background()

	f.api.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{}, nil)
	f.api.EXPECT().Subscription(gomock.Any(), "checkout", json.RawMessage(`{"plan":"m"}`)).
		Return(http.StatusOK, json.RawMessage(`{"url":"u"}`), nil)

	_, _ = ws.Profile(ctx)
	res, err := ws.Subscription(ctx, "checkout", json.RawMessage(`{"plan":"m"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.JSONEq(t, `{"url":"u"}`, string(res.Body))

	snap, _ := ws.Cache().Snapshot(querycache.NewKey(querycache.ResourceUser, "me"))
	require.True(t, snap.Stale)
}

func TestWorkspace_OpenWizardSnapshotsAddress(t *testing.T) {
	t.Run("from profile", func(t *testing.T) {
		f, ws := openWorkspace(t)
		f.api.EXPECT().GetProfile(gomock.Any()).
			Return(&domain.Profile{Address: domain.Address{City: "Berlin"}}, nil)

		view := ws.OpenWizard(context.Background())
		require.True(t, view.Open)
		require.Equal(t, wizard.StepServiceType, view.Step)
		require.Equal(t, "Berlin", view.Draft.Address.City)
	})

	t.Run("profile unavailable", func(t *testing.T) {
		f, ws := openWorkspace(t)
		f.api.EXPECT().GetProfile(gomock.Any()).
			Return(nil, domain.NewUpstreamError(http.StatusNotFound, "no profile"))

		view := ws.OpenWizard(context.Background())
		require.True(t, view.Open)
		require.Empty(t, view.Draft.Address)
	})
}

func TestWorkspace_SelectSlot(t *testing.T) {
	f, ws := openWorkspace(t)
	ctx := context.Background()
	rng := domain.SlotRange{StartDate: "2030-01-02", EndDate: "2030-01-08"}
	start := testNow.Add(24 * time.Hour)

	f.api.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{}, nil)
	f.api.EXPECT().ListSlots(gomock.Any(), rng).Return(&domain.SlotList{Slots: []domain.Slot{
		{ID: "s-1", Start: start, End: start.Add(time.Hour), Available: true},
	}, Total: 1}, nil).Times(1)

	ws.OpenWizard(ctx)

	_, err := ws.SelectSlot(ctx, "s-404", rng)
	require.ErrorIs(t, err, usecase.ErrSlotNotFound)
	require.ErrorIs(t, err, domain.ErrValidation)

	view, err := ws.SelectSlot(ctx, "s-1", rng)
	require.NoError(t, err)
	require.Equal(t, "s-1", view.Draft.Slot.SlotID)
	require.True(t, view.Draft.Slot.Available)
}
