package backend

import (
	"context"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

func (s *Session) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var out domain.Profile
	if err := s.doJSON(ctx, request{action: "get_profile", method: http.MethodGet, path: "/users/me"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.Profile, error) {
	req, err := jsonRequest("update_profile", http.MethodPatch, "/users/me", patch)
	if err != nil {
		return nil, err
	}
	var out domain.Profile
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
