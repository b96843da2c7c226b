package domain

// EventType — тип уведомления бэкенда об изменении ресурса.
type EventType string

const (
	EventBoxStatusChanged EventType = "box.status_changed"
	EventBoxUpdated       EventType = "box.updated"
	EventOrderUpdated     EventType = "order.updated"
	EventPhotoProcessed   EventType = "photo.processed"
	EventSlotsChanged     EventType = "slots.changed"
	EventSubscription     EventType = "subscription.updated"
)

// ResourceEvent — сообщение из топика изменений бэкенда.
type ResourceEvent struct {
	Type       EventType `json:"type" validate:"required,oneof=box.status_changed box.updated order.updated photo.processed slots.changed subscription.updated"`
	UserID     string    `json:"user_id" validate:"required"`
	ResourceID string    `json:"resource_id"`
}
