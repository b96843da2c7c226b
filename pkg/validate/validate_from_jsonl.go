package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/storage_portal/internal/ports"
)

// StreamResult — статистика валидации потока документов.
type StreamResult struct {
	ValidCount   int
	InvalidCount int
}

func (r StreamResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.ValidCount, r.InvalidCount)
}

// ValidateJSONLStream — по одному черновику на строку; валидные пишутся в writer
// компактным JSON, невалидные только считаются. Пустые строки пропускаются.
func ValidateJSONLStream(ctx context.Context, validator ports.DraftValidator, ir io.Reader, ow io.Writer) (StreamResult, error) {
	var res StreamResult

	scanner := bufio.NewScanner(ir)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}

		draft, err := DraftFromJSON(ctx, validator, line)
		if err != nil {
			res.InvalidCount++
			continue
		}
		if err := writeCanonical(ow, draft); err != nil {
			return res, err
		}
		res.ValidCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

func writeCanonical(ow io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := ow.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
