package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/internal/wizard"
)

// ErrSlotNotFound — выбранного слота нет в списке доступных за период.
var ErrSlotNotFound = fmt.Errorf("%w: slot not found", domain.ErrValidation)

type boxEdit struct {
	ID    string
	Patch domain.BoxPatch
}

type boxStatusEdit struct {
	ID     string
	Status domain.BoxStatus
}

type orderEdit struct {
	ID    string
	Patch domain.OrderPatch
}

type photoBatch struct {
	SessionID string
	Files     []domain.UploadFile
}

type subscriptionCall struct {
	Action string
	Body   json.RawMessage
}

// SubscriptionResult — ответ биллинга как есть.
type SubscriptionResult struct {
	Status int
	Body   json.RawMessage
}

// Workspace — кэш, мутации и мастер одной сессии.
type Workspace struct {
	session domain.Session
	api     ports.StorageAPI
	cache   *querycache.Cache
	wizard  *wizard.Wizard
	log     ports.Logger

	updateProfile   *querycache.Mutation[domain.ProfilePatch, *domain.Profile]
	updateBox       *querycache.Mutation[boxEdit, *domain.Box]
	updateBoxStatus *querycache.Mutation[boxStatusEdit, *domain.Message]
	createOrder     *querycache.Mutation[domain.CreateOrderRequest, *domain.Order]
	updateOrder     *querycache.Mutation[orderEdit, *domain.Order]
	deletePhoto     *querycache.Mutation[string, *domain.Message]
	uploadPhotos    *querycache.Mutation[photoBatch, *domain.UploadResult]
	subscription    *querycache.Mutation[subscriptionCall, SubscriptionResult]
}

func newWorkspace(s domain.Session, api ports.StorageAPI, cacheOpts querycache.Options, wizOpts wizard.Options, log ports.Logger) *Workspace {
	cache := querycache.New(cacheOpts)
	ws := &Workspace{
		session: s,
		api:     api,
		cache:   cache,
		wizard:  wizard.New(api, cache, wizOpts),
		log:     log,
	}

	ws.updateProfile = querycache.NewMutation(cache, querycache.MutationSpec[domain.ProfilePatch, *domain.Profile]{
		Call:    api.UpdateProfile,
		Affects: querycache.Invalidates[domain.ProfilePatch, *domain.Profile](querycache.AnyOf(querycache.ResourceUser)),
	})
	ws.updateBox = querycache.NewMutation(cache, querycache.MutationSpec[boxEdit, *domain.Box]{
		Call: func(ctx context.Context, in boxEdit) (*domain.Box, error) {
			return api.UpdateBox(ctx, in.ID, in.Patch)
		},
		Affects: func(in boxEdit, _ *domain.Box) []querycache.Key {
			return []querycache.Key{boxKey(in.ID), boxListKey()}
		},
	})
	ws.updateBoxStatus = querycache.NewMutation(cache, querycache.MutationSpec[boxStatusEdit, *domain.Message]{
		Call: func(ctx context.Context, in boxStatusEdit) (*domain.Message, error) {
			return api.UpdateBoxStatus(ctx, in.ID, in.Status)
		},
		Affects: func(in boxStatusEdit, _ *domain.Message) []querycache.Key {
			return []querycache.Key{boxKey(in.ID), boxListKey()}
		},
	})
	ws.createOrder = querycache.NewMutation(cache, querycache.MutationSpec[domain.CreateOrderRequest, *domain.Order]{
		Call: api.CreateOrder,
		Affects: querycache.Invalidates[domain.CreateOrderRequest, *domain.Order](
			querycache.AnyOf(querycache.ResourceOrders),
			querycache.AnyOf(querycache.ResourceBoxes),
			querycache.AnyOf(querycache.ResourceSlots),
		),
	})
	ws.updateOrder = querycache.NewMutation(cache, querycache.MutationSpec[orderEdit, *domain.Order]{
		Call: func(ctx context.Context, in orderEdit) (*domain.Order, error) {
			return api.UpdateOrder(ctx, in.ID, in.Patch)
		},
		Affects: func(in orderEdit, _ *domain.Order) []querycache.Key {
			return []querycache.Key{orderKey(in.ID), querycache.AnyOf(querycache.ResourceOrders)}
		},
	})
	ws.deletePhoto = querycache.NewMutation(cache, querycache.MutationSpec[string, *domain.Message]{
		Call:    api.DeletePhoto,
		Affects: querycache.Invalidates[string, *domain.Message](querycache.AnyOf(querycache.ResourcePhotos)),
	})
	ws.uploadPhotos = querycache.NewMutation(cache, querycache.MutationSpec[photoBatch, *domain.UploadResult]{
		Call: func(ctx context.Context, in photoBatch) (*domain.UploadResult, error) {
			return api.UploadPhotos(ctx, in.SessionID, in.Files)
		},
		Affects: querycache.Invalidates[photoBatch, *domain.UploadResult](querycache.AnyOf(querycache.ResourcePhotos)),
	})
	ws.subscription = querycache.NewMutation(cache, querycache.MutationSpec[subscriptionCall, SubscriptionResult]{
		Call: func(ctx context.Context, in subscriptionCall) (SubscriptionResult, error) {
			status, body, err := api.Subscription(ctx, in.Action, in.Body)
			return SubscriptionResult{Status: status, Body: body}, err
		},
		Affects: querycache.Invalidates[subscriptionCall, SubscriptionResult](
			querycache.AnyOf(querycache.ResourceSubscription),
			querycache.AnyOf(querycache.ResourceUser),
		),
	})
	return ws
}

func (w *Workspace) Session() domain.Session { return w.session }

func (w *Workspace) Cache() *querycache.Cache { return w.cache }

func (w *Workspace) Wizard() *wizard.Wizard { return w.wizard }

// ------чтение через кэш------

func (w *Workspace) Profile(ctx context.Context) (*domain.Profile, error) {
	return querycache.Fetch(ctx, w.cache, profileKey(), w.api.GetProfile)
}

func (w *Workspace) Boxes(ctx context.Context) (*domain.BoxList, error) {
	return querycache.Fetch(ctx, w.cache, boxListKey(), w.api.ListBoxes)
}

func (w *Workspace) Box(ctx context.Context, id string) (*domain.Box, error) {
	return querycache.Fetch(ctx, w.cache, boxKey(id), func(ctx context.Context) (*domain.Box, error) {
		return w.api.GetBox(ctx, id)
	})
}

func (w *Workspace) Orders(ctx context.Context, f domain.OrderFilter) (*domain.OrderList, error) {
	return querycache.Fetch(ctx, w.cache, orderListKey(f), func(ctx context.Context) (*domain.OrderList, error) {
		return w.api.ListOrders(ctx, f)
	})
}

func (w *Workspace) Order(ctx context.Context, id string) (*domain.Order, error) {
	return querycache.Fetch(ctx, w.cache, orderKey(id), func(ctx context.Context) (*domain.Order, error) {
		return w.api.GetOrder(ctx, id)
	})
}

func (w *Workspace) SessionPhotos(ctx context.Context, sessionID string) (*domain.PhotoList, error) {
	return querycache.Fetch(ctx, w.cache, sessionPhotosKey(sessionID), func(ctx context.Context) (*domain.PhotoList, error) {
		return w.api.ListSessionPhotos(ctx, sessionID)
	})
}

func (w *Workspace) Slots(ctx context.Context, r domain.SlotRange) (*domain.SlotList, error) {
	return querycache.Fetch(ctx, w.cache, slotsKey(r), func(ctx context.Context) (*domain.SlotList, error) {
		return w.api.ListSlots(ctx, r)
	})
}

// ------мутации------

func (w *Workspace) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.Profile, error) {
	return w.updateProfile.Mutate(ctx, patch)
}

func (w *Workspace) UpdateBox(ctx context.Context, id string, patch domain.BoxPatch) (*domain.Box, error) {
	return w.updateBox.Mutate(ctx, boxEdit{ID: id, Patch: patch})
}

func (w *Workspace) UpdateBoxStatus(ctx context.Context, id string, status domain.BoxStatus) (*domain.Message, error) {
	return w.updateBoxStatus.Mutate(ctx, boxStatusEdit{ID: id, Status: status})
}

func (w *Workspace) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	return w.createOrder.Mutate(ctx, req)
}

func (w *Workspace) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	return w.updateOrder.Mutate(ctx, orderEdit{ID: id, Patch: patch})
}

func (w *Workspace) DeletePhoto(ctx context.Context, id string) (*domain.Message, error) {
	return w.deletePhoto.Mutate(ctx, id)
}

func (w *Workspace) UploadPhotos(ctx context.Context, sessionID string, files []domain.UploadFile) (*domain.UploadResult, error) {
	return w.uploadPhotos.Mutate(ctx, photoBatch{SessionID: sessionID, Files: files})
}

func (w *Workspace) Subscription(ctx context.Context, action string, body json.RawMessage) (SubscriptionResult, error) {
	return w.subscription.Mutate(ctx, subscriptionCall{Action: action, Body: body})
}

// ------мастер------

// OpenWizard — открывает мастер со снимком адреса из профиля.
// Без профиля мастер открывается с пустым адресом.
func (w *Workspace) OpenWizard(ctx context.Context) wizard.View {
	var addr domain.Address
	profile, err := w.Profile(ctx)
	if profile != nil {
		addr = profile.Address
	}
	if err != nil && w.log != nil {
		w.log.Warnf(ctx, "open wizard: profile unavailable, address left empty: %v", err)
	}
	return w.wizard.Open(addr)
}

// SelectSlot — находит слот в (кэшированном) списке за период и выбирает его в мастере.
func (w *Workspace) SelectSlot(ctx context.Context, slotID string, r domain.SlotRange) (wizard.View, error) {
	list, err := w.Slots(ctx, r)
	if list == nil {
		return w.wizard.View(), err
	}
	for _, s := range list.Slots {
		if s.ID == slotID {
			return w.wizard.SelectSlot(s)
		}
	}
	return w.wizard.View(), fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
}

func (w *Workspace) close() {
	w.wizard.Close()
	w.cache.Clear()
}
