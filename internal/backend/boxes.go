package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

func (s *Session) ListBoxes(ctx context.Context) (*domain.BoxList, error) {
	var out domain.BoxList
	if err := s.doJSON(ctx, request{action: "list_boxes", method: http.MethodGet, path: "/boxes"}, &out); err != nil {
		return nil, err
	}
	if out.Boxes == nil {
		out.Boxes = []domain.Box{}
	}
	return &out, nil
}

func (s *Session) GetBox(ctx context.Context, id string) (*domain.Box, error) {
	var out domain.Box
	req := request{action: "get_box", method: http.MethodGet, path: "/boxes/" + url.PathEscape(id)}
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateBox(ctx context.Context, id string, patch domain.BoxPatch) (*domain.Box, error) {
	req, err := jsonRequest("update_box", http.MethodPatch, "/boxes/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	var out domain.Box
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateBoxStatus(ctx context.Context, id string, status domain.BoxStatus) (*domain.Message, error) {
	req, err := jsonRequest("update_box_status", http.MethodPatch, "/boxes/"+url.PathEscape(id)+"/status",
		domain.BoxStatusUpdate{Status: status})
	if err != nil {
		return nil, err
	}
	var out domain.Message
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
