package domain

import "time"

// BoxStatus — статус коробки на стороне хранилища.
type BoxStatus string

const (
	BoxStatusPending   BoxStatus = "pending"
	BoxStatusInTransit BoxStatus = "in_transit"
	BoxStatusStored    BoxStatus = "stored"
	BoxStatusReturning BoxStatus = "returning"
	BoxStatusReturned  BoxStatus = "returned"
)

type Box struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id,omitempty"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      BoxStatus `json:"status"`
	PhotoURLs   []string  `json:"photo_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BoxList struct {
	Boxes []Box `json:"boxes"`
}

// BoxPatch — частичное обновление коробки (nil — поле не меняется).
type BoxPatch struct {
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
}

type BoxStatusUpdate struct {
	Status BoxStatus `json:"status" binding:"required"`
}

// Message — типовой ответ бэкенда вида {message}.
type Message struct {
	Message string `json:"message"`
}
