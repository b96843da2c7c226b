package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

// UploadPhotos — multipart (session_id + files). 201 — всё загружено, 206 — частично.
func (s *Session) UploadPhotos(ctx context.Context, sessionID string, files []domain.UploadFile) (*domain.UploadResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("upload photos: %w: empty session id", domain.ErrValidation)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("upload photos: %w: no files", domain.ErrValidation)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("session_id", sessionID); err != nil {
		return nil, fmt.Errorf("upload photos: write session_id: %w", err)
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(f.Filename)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("upload photos: create part: %w", err)
		}
		if f.Content != nil {
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, fmt.Errorf("upload photos: copy %s: %w", f.Filename, err)
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload photos: close multipart: %w", err)
	}

	req := request{
		action:      "upload_photos",
		method:      http.MethodPost,
		path:        "/photos/upload",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}
	var out domain.UploadResult
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.TotalUploaded == 0 {
		out.TotalUploaded = len(out.UploadedPhotos)
	}
	return &out, nil
}

func (s *Session) DeletePhoto(ctx context.Context, id string) (*domain.Message, error) {
	var out domain.Message
	req := request{action: "delete_photo", method: http.MethodDelete, path: "/photos/" + url.PathEscape(id)}
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListSessionPhotos(ctx context.Context, sessionID string) (*domain.PhotoList, error) {
	var out domain.PhotoList
	req := request{action: "list_session_photos", method: http.MethodGet, path: "/photos/session/" + url.PathEscape(sessionID)}
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Photos == nil {
		out.Photos = []domain.Photo{}
	}
	return &out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
