package domain

import (
	"io"
	"net/http"
)

type Photo struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id,omitempty"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

type PhotoList struct {
	Photos []Photo `json:"photos"`
	Total  int     `json:"total"`
}

// UploadFile — файл для multipart-загрузки.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResult — ответ POST /photos/upload.
// Частичный успех (206): часть файлов загружена, часть — в Errors.
type UploadResult struct {
	UploadedPhotos []Photo       `json:"uploaded_photos"`
	TotalUploaded  int           `json:"total_uploaded"`
	Errors         []UploadError `json:"errors,omitempty"`
}

// Partial — ни полный успех, ни полный провал.
func (r *UploadResult) Partial() bool {
	return len(r.UploadedPhotos) > 0 && len(r.Errors) > 0
}

// StatusCode — HTTP-код, соответствующий результату загрузки.
func (r *UploadResult) StatusCode() int {
	switch {
	case len(r.UploadedPhotos) == 0 && len(r.Errors) > 0:
		return http.StatusUnprocessableEntity
	case r.Partial():
		return http.StatusPartialContent
	default:
		return http.StatusCreated
	}
}
