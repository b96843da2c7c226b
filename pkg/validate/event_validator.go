package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidEvent — сообщение о событии не прошло проверку; такие сообщения коммитятся и пропускаются.
var ErrInvalidEvent = errors.New("event validation failed")

var eventValidator = newStructValidator()

// DecodeEvent — строгий разбор события об изменении ресурса с валидацией.
func DecodeEvent(raw []byte) (*domain.ResourceEvent, error) {
	var ev domain.ResourceEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %w", ErrInvalidEvent, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidEvent)
	}
	if err := eventValidator.Struct(&ev); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, toFieldErrors(verrs))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return &ev, nil
}
