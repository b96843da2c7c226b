package domain

import "time"

// ServiceType — вариант упаковки, выбирается на первом шаге мастера.
type ServiceType string

const (
	ServiceSelfPacked ServiceType = "self-packed"
	ServiceAssisted   ServiceType = "assisted"
)

const (
	MinQuantity    = 1
	MaxQuantity    = 10
	MaxNotesLength = 500
)

// SlotSelection — выбранное окно и его доступность на момент выбора.
type SlotSelection struct {
	SlotID    string    `json:"slot_id" yaml:"slot_id" validate:"required"`
	Type      SlotType  `json:"type,omitempty" yaml:"type,omitempty"`
	Start     time.Time `json:"start" yaml:"start" validate:"required"`
	End       time.Time `json:"end" yaml:"end" validate:"required,gtfield=Start"`
	Available bool      `json:"available" yaml:"available"`
}

// Draft — черновик заказа, который накапливает мастер создания.
type Draft struct {
	ServiceType ServiceType    `json:"service_type" yaml:"service_type" validate:"omitempty,oneof=self-packed assisted"`
	Quantity    int            `json:"quantity" yaml:"quantity" validate:"min=1,max=10"`
	SessionID   string         `json:"session_id" yaml:"session_id"`
	PhotoRefs   []string       `json:"photo_refs" yaml:"photo_refs" validate:"dive,required"`
	Slot        *SlotSelection `json:"slot,omitempty" yaml:"slot,omitempty"`
	Notes       string         `json:"notes" yaml:"notes" validate:"max=500"`
	Address     Address        `json:"address" yaml:"address"`
}

// NewDraft — черновик со значениями по умолчанию.
func NewDraft(sessionID string, addr Address) Draft {
	return Draft{
		Quantity:  MinQuantity,
		SessionID: sessionID,
		PhotoRefs: []string{},
		Address:   addr,
	}
}

// Clone — глубокая копия, чтобы наружу не утекали внутренние срезы.
func (d *Draft) Clone() Draft {
	out := *d
	if d.PhotoRefs != nil {
		out.PhotoRefs = append(make([]string, 0, len(d.PhotoRefs)), d.PhotoRefs...)
	}
	if d.Slot != nil {
		s := *d.Slot
		out.Slot = &s
	}
	return out
}
