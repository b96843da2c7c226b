package ports

import (
	"context"
	"encoding/json"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

// StorageAPI — контракт бэкенда хранилища/пользователей/биллинга от имени одной сессии.
// Каждый вызов уходит с Authorization: Bearer <token>.
type StorageAPI interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.Profile, error)

	ListBoxes(ctx context.Context) (*domain.BoxList, error)
	GetBox(ctx context.Context, id string) (*domain.Box, error)
	UpdateBox(ctx context.Context, id string, patch domain.BoxPatch) (*domain.Box, error)
	UpdateBoxStatus(ctx context.Context, id string, status domain.BoxStatus) (*domain.Message, error)

	ListOrders(ctx context.Context, filter domain.OrderFilter) (*domain.OrderList, error)
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)

	UploadPhotos(ctx context.Context, sessionID string, files []domain.UploadFile) (*domain.UploadResult, error)
	DeletePhoto(ctx context.Context, id string) (*domain.Message, error)
	ListSessionPhotos(ctx context.Context, sessionID string) (*domain.PhotoList, error)

	ListSlots(ctx context.Context, r domain.SlotRange) (*domain.SlotList, error)

	// Subscription — сквозной вызов /subscriptions/{action}; тело и ответ не типизированы.
	Subscription(ctx context.Context, action string, body json.RawMessage) (int, json.RawMessage, error)
}
