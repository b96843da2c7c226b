package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// validDraftJSON — минимальный валидный черновик.
func validDraftJSON(sessionID string, quantity int, refs ...string) string {
	refsJSON, _ := json.Marshal(refs)
	return fmt.Sprintf(`{
	  "service_type": "self-packed",
	  "quantity": %d,
	  "session_id": %q,
	  "photo_refs": %s,
	  "slot": {"slot_id": "s-1", "type": "drop_off", "start": "2030-01-01T10:00:00Z", "end": "2030-01-01T12:00:00Z", "available": true},
	  "notes": "",
	  "address": {"street": "Main 1", "city": "Berlin", "postal_code": "10115", "country": "DE"}
	}`, quantity, sessionID, refsJSON)
}

func oneLineJSON(s string) string {
	var b bytes.Buffer
	_ = json.Compact(&b, []byte(s))
	return b.String()
}
