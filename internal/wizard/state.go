package wizard

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

// State — шаг мастера и накопленный черновик. Функции ниже не меняют аргумент.
type State struct {
	Step  Step         `json:"step"`
	Draft domain.Draft `json:"draft"`
}

// Initial — состояние сразу после открытия мастера.
func Initial(sessionID string, addr domain.Address) State {
	return State{Step: StepServiceType, Draft: domain.NewDraft(sessionID, addr)}
}

// Patch — частичное обновление черновика (nil — поле не меняется).
type Patch struct {
	ServiceType *domain.ServiceType `json:"service_type,omitempty"`
	Quantity    *int                `json:"quantity,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Address     *domain.Address     `json:"address,omitempty"`
}

// Advance — переход к следующему шагу, если текущий пройден.
// При заблокированном переходе состояние возвращается без изменений.
func Advance(s State, now time.Time) (State, ValidationResult) {
	res := CanProceed(s.Step, &s.Draft, now)
	if !res.Valid || s.Step == StepReview {
		return s, res
	}
	return State{Step: s.Step + 1, Draft: s.Draft.Clone()}, res
}

// Retreat — шаг назад; данные черновика сохраняются.
func Retreat(s State) State {
	if s.Step == StepServiceType {
		return s
	}
	return State{Step: s.Step - 1, Draft: s.Draft.Clone()}
}

// UpdateDraft — применяет корректные поля патча, шаг не меняется.
// Некорректные поля не применяются и возвращаются в результате.
func UpdateDraft(s State, p Patch) (State, ValidationResult) {
	res := newResult()
	d := s.Draft.Clone()

	if p.ServiceType != nil {
		switch st := *p.ServiceType; {
		case s.Step != StepServiceType:
			res.add("service_type", "вариант упаковки меняется только на первом шаге")
		case st != domain.ServiceSelfPacked && st != domain.ServiceAssisted:
			res.add("service_type", "неизвестный вариант упаковки")
		default:
			d.ServiceType = st
		}
	}
	if p.Quantity != nil {
		d.Quantity = ClampQuantity(*p.Quantity)
	}
	if p.Notes != nil {
		if utf8.RuneCountInString(*p.Notes) > domain.MaxNotesLength {
			res.add("notes", fmt.Sprintf("не более %d символов", domain.MaxNotesLength))
		} else {
			d.Notes = *p.Notes
		}
	}
	if p.Address != nil {
		d.Address = *p.Address
	}

	return State{Step: s.Step, Draft: d}, res
}

// IncrementQuantity — +1 коробка; на верхней границе ничего не делает.
func IncrementQuantity(s State) State {
	if s.Draft.Quantity >= domain.MaxQuantity {
		return s
	}
	d := s.Draft.Clone()
	d.Quantity = ClampQuantity(d.Quantity + 1)
	return State{Step: s.Step, Draft: d}
}

// DecrementQuantity — −1 коробка; на нижней границе ничего не делает.
// Уже загруженные фотографии не удаляются.
func DecrementQuantity(s State) State {
	if s.Draft.Quantity <= domain.MinQuantity {
		return s
	}
	d := s.Draft.Clone()
	d.Quantity = ClampQuantity(d.Quantity - 1)
	return State{Step: s.Step, Draft: d}
}

// ClampQuantity — max(1, min(10, q)).
func ClampQuantity(q int) int {
	return max(domain.MinQuantity, min(domain.MaxQuantity, q))
}
