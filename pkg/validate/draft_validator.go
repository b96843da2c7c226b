package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/go-playground/validator/v10"
)

// Проверка, что DraftValidator удовлетворяет интерфейсу ports.DraftValidator.
var _ ports.DraftValidator = (*DraftValidator)(nil)

// ErrInvalidDraft — базовая (sentinel error) ошибка валидации черновика.
var ErrInvalidDraft = errors.New("draft validation failed")

// DraftValidator — структурная валидация черновика заказа (теги validate + правила уровня структуры).
type DraftValidator struct {
	v *validator.Validate
}

// NewDraftValidator — конструктор DraftValidator.
// Возвращает ErrInvalidDraft (с обёрнутыми FieldErrors) при любой проблеме.
func NewDraftValidator() *DraftValidator {
	return &DraftValidator{v: newStructValidator()}
}

// Validate — проверяет поля черновика.
func (dv *DraftValidator) Validate(_ context.Context, draft *domain.Draft) error {
	if draft == nil {
		return fmt.Errorf("%w: черновик не может быть nil", ErrInvalidDraft)
	}
	if err := dv.v.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalidDraft, toFieldErrors(verrs))
		}
		return fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	return nil
}

// FieldErrors — ошибки по полям (json-имя → сообщение).
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Fields — достаёт FieldErrors из цепочки ошибок (nil, если их нет).
func Fields(err error) map[string]string {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

func newStructValidator() *validator.Validate {
	v := validator.New()
	// в ошибках используем json-имена полей
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(draftStructLevel, domain.Draft{})
	return v
}

// draftStructLevel — правила, которые не выражаются тегами.
func draftStructLevel(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(domain.Draft)
	if !ok {
		return
	}
	if len(d.PhotoRefs) > d.Quantity {
		sl.ReportError(d.PhotoRefs, "photo_refs", "PhotoRefs", "lte_quantity", "")
	}
	seen := make(map[string]struct{}, len(d.PhotoRefs))
	for _, ref := range d.PhotoRefs {
		if _, dup := seen[ref]; dup {
			sl.ReportError(d.PhotoRefs, "photo_refs", "PhotoRefs", "unique", "")
			return
		}
		seen[ref] = struct{}{}
	}
}

func toFieldErrors(verrs validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = describe(fe)
	}
	return out
}

// fieldPath — "Draft.slot.end" → "slot.end".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "oneof":
		return "допустимые значения: " + fe.Param()
	case "min":
		return "значение меньше " + fe.Param()
	case "max":
		return "значение больше " + fe.Param()
	case "gtfield":
		return "должно быть позже " + strings.ToLower(fe.Param())
	case "lte_quantity":
		return "фотографий больше, чем коробок"
	case "unique":
		return "повторяющиеся фотографии"
	default:
		return "некорректное значение (" + fe.Tag() + ")"
	}
}
