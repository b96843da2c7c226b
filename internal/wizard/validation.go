package wizard

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

// ValidationResult — результат проверки шага: поле → сообщение.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func newResult() ValidationResult { return ValidationResult{Valid: true} }

func (r *ValidationResult) add(field, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = msg
	}
	r.Valid = false
}

func (r *ValidationResult) merge(other ValidationResult) {
	for f, msg := range other.Errors {
		r.add(f, msg)
	}
}

// ValidationError — действие заблокировано локальной проверкой; в сеть не ходили.
type ValidationError struct {
	Step   Step
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("step %s: invalid %s", e.Step, strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

func (r ValidationResult) asError(step Step) error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Step: step, Fields: r.Errors}
}

// CanProceed — можно ли уйти с шага step с таким черновиком.
// Review заново проверяет все предыдущие шаги и окно слота относительно now.
func CanProceed(step Step, d *domain.Draft, now time.Time) ValidationResult {
	res := newResult()

	switch step {
	case StepServiceType:
		checkServiceType(&res, d)
	case StepQuantity:
		checkQuantity(&res, d)
	case StepPhotoUpload:
		checkPhotos(&res, d)
	case StepSlotSelection:
		checkSlot(&res, d)
	case StepReview:
		for s := StepServiceType; s < StepReview; s++ {
			res.merge(CanProceed(s, d, now))
		}
		if utf8.RuneCountInString(d.Notes) > domain.MaxNotesLength {
			res.add("notes", fmt.Sprintf("не более %d символов", domain.MaxNotesLength))
		}
		if d.Slot != nil {
			if !d.Slot.End.After(d.Slot.Start) {
				res.add("slot", "окно слота задано некорректно")
			} else if !d.Slot.Start.After(now) {
				res.add("slot", "окно слота уже началось")
			}
		}
	default:
		res.add("step", "неизвестный шаг")
	}
	return res
}

func checkServiceType(res *ValidationResult, d *domain.Draft) {
	switch d.ServiceType {
	case domain.ServiceSelfPacked, domain.ServiceAssisted:
	case "":
		res.add("service_type", "выберите вариант упаковки")
	default:
		res.add("service_type", "неизвестный вариант упаковки")
	}
}

func checkQuantity(res *ValidationResult, d *domain.Draft) {
	if d.Quantity < domain.MinQuantity || d.Quantity > domain.MaxQuantity {
		res.add("quantity", fmt.Sprintf("от %d до %d коробок", domain.MinQuantity, domain.MaxQuantity))
	}
}

func checkPhotos(res *ValidationResult, d *domain.Draft) {
	switch n := len(d.PhotoRefs); {
	case n == 0:
		res.add("photo_refs", "загрузите хотя бы одну фотографию")
	case n > d.Quantity:
		res.add("photo_refs", fmt.Sprintf("фотографий больше, чем коробок (%d > %d)", n, d.Quantity))
	}
}

func checkSlot(res *ValidationResult, d *domain.Draft) {
	switch {
	case d.Slot == nil:
		res.add("slot", "выберите время")
	case !d.Slot.Available:
		res.add("slot", "слот был недоступен при выборе")
	}
}
