package validate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"gopkg.in/yaml.v3"
)

// ValidateYAMLStream — многодокументный YAML (разделитель ---), по черновику на документ.
// Синтаксическая ошибка прерывает разбор: дальше поток не читается.
func ValidateYAMLStream(ctx context.Context, validator ports.DraftValidator, ir io.Reader, ow io.Writer) (StreamResult, error) {
	var res StreamResult

	dec := yaml.NewDecoder(ir)
	dec.KnownFields(true)
	for {
		var draft domain.Draft
		err := dec.Decode(&draft)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				// документ прочитан, но поля не сошлись — считаем невалидным и идём дальше
				res.InvalidCount++
				continue
			}
			return res, fmt.Errorf("invalid yaml: %w", err)
		}
		if err := validator.Validate(ctx, &draft); err != nil {
			res.InvalidCount++
			continue
		}
		if err := writeCanonical(ow, &draft); err != nil {
			return res, err
		}
		res.ValidCount++
	}
}
