package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          string      `json:"id"`
	Status      OrderStatus `json:"status"`
	ServiceType ServiceType `json:"service_type"`
	Quantity    int         `json:"quantity"`
	SessionID   string      `json:"session_id,omitempty"`
	PhotoRefs   []string    `json:"photo_refs,omitempty"`
	SlotID      string      `json:"slot_id,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Address     Address     `json:"address"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// OrderFilter — фильтры списка заказов; пустые значения не передаются в бэкенд.
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// OrderPatch — частичное обновление заказа (в т.ч. отмена через status).
type OrderPatch struct {
	Status *OrderStatus `json:"status,omitempty"`
	Notes  *string      `json:"notes,omitempty"`
	SlotID *string      `json:"slot_id,omitempty"`
}

// CreateOrderRequest — полный черновик, отправляемый в POST /orders.
type CreateOrderRequest struct {
	ServiceType ServiceType `json:"service_type"`
	Quantity    int         `json:"quantity"`
	SessionID   string      `json:"session_id"`
	PhotoRefs   []string    `json:"photo_refs"`
	SlotID      string      `json:"slot_id"`
	SlotStart   time.Time   `json:"slot_start"`
	SlotEnd     time.Time   `json:"slot_end"`
	Notes       string      `json:"notes,omitempty"`
	Address     Address     `json:"address"`
}

// NewCreateOrderRequest — собирает запрос на создание заказа из черновика.
func NewCreateOrderRequest(d *Draft) CreateOrderRequest {
	req := CreateOrderRequest{
		ServiceType: d.ServiceType,
		Quantity:    d.Quantity,
		SessionID:   d.SessionID,
		PhotoRefs:   append([]string(nil), d.PhotoRefs...),
		Notes:       d.Notes,
		Address:     d.Address,
	}
	if d.Slot != nil {
		req.SlotID = d.Slot.SlotID
		req.SlotStart = d.Slot.Start
		req.SlotEnd = d.Slot.End
	}
	return req
}
