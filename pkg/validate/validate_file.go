package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/storage_portal/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
	FormatYAML  InputFormat = "yaml"
)

// DetectFormat — формат по расширению файла; по умолчанию JSON.
func DetectFormat(filePath string) InputFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ValidateFile — валидирует файл с черновиками и пишет валидные в writer.
// Возвращает сводку вида "N valid / M invalid".
func ValidateFile(ctx context.Context, validator ports.DraftValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	if format == FormatAuto {
		format = DetectFormat(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var res StreamResult
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		draft, err := DraftFromJSON(ctx, validator, raw)
		if err != nil {
			return StreamResult{InvalidCount: 1}.String(), err
		}
		if err := writeCanonical(ow, draft); err != nil {
			return "", err
		}
		res.ValidCount = 1

	case FormatJSONL:
		res, err = ValidateJSONLStream(ctx, validator, file, ow)
	case FormatYAML:
		res, err = ValidateYAMLStream(ctx, validator, file, ow)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
