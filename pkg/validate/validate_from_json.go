package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
)

// DraftFromJSON — строгий разбор и валидация черновика из JSON.
func DraftFromJSON(ctx context.Context, validator ports.DraftValidator, raw []byte) (*domain.Draft, error) {
	var draft domain.Draft
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&draft); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := validator.Validate(ctx, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
