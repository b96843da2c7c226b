package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

func (s *Session) ListSlots(ctx context.Context, r domain.SlotRange) (*domain.SlotList, error) {
	req, err := jsonRequest("list_slots", http.MethodPost, "/slots", r)
	if err != nil {
		return nil, err
	}
	var out domain.SlotList
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Slots == nil {
		out.Slots = []domain.Slot{}
	}
	return &out, nil
}

// SubscriptionActions — допустимые действия /subscriptions/{action}.
var SubscriptionActions = map[string]struct{}{
	"checkout":   {},
	"cancel":     {},
	"reactivate": {},
	"portal":     {},
}

// Subscription — сквозной вызов биллинга; тело ответа возвращается без разбора.
func (s *Session) Subscription(ctx context.Context, action string, body json.RawMessage) (int, json.RawMessage, error) {
	if _, ok := SubscriptionActions[action]; !ok {
		return 0, nil, fmt.Errorf("subscription: %w: unknown action %q", domain.ErrValidation, action)
	}
	req := request{action: "subscription_" + action, method: http.MethodPost, path: "/subscriptions/" + action}
	if len(body) > 0 {
		req.body = bytes.NewReader(body)
		req.contentType = "application/json"
	}
	status, raw, err := s.do(ctx, req)
	if err != nil {
		return status, nil, err
	}
	return status, json.RawMessage(raw), nil
}
