package wizard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

// UploadStatus — состояние загрузки одной фотографии.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploaded  UploadStatus = "uploaded"
	UploadFailed    UploadStatus = "failed"
	UploadAbandoned UploadStatus = "abandoned"
)

// Upload — одна фотография из пакетной загрузки.
type Upload struct {
	ID       string       `json:"id"`
	Filename string       `json:"filename"`
	Status   UploadStatus `json:"status"`
	PhotoID  string       `json:"photo_id,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// UploadReport — итог пакетной загрузки: успешные и ошибочные файлы вместе.
type UploadReport struct {
	Uploads       []Upload             `json:"uploads"`
	TotalUploaded int                  `json:"total_uploaded"`
	Errors        []domain.UploadError `json:"errors,omitempty"`
}

// StatusCode — 201 всё загружено, 206 частично, 422 ничего.
func (r *UploadReport) StatusCode() int {
	switch {
	case r.TotalUploaded == 0 && len(r.Errors) > 0:
		return http.StatusUnprocessableEntity
	case r.TotalUploaded > 0 && len(r.Errors) > 0:
		return http.StatusPartialContent
	default:
		return http.StatusCreated
	}
}

func (r *UploadReport) fail(u *Upload, msg string) {
	u.Status = UploadFailed
	u.Error = msg
	r.Errors = append(r.Errors, domain.UploadError{Filename: u.Filename, Error: msg})
}

var allowedPhotoTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
	"image/heif",
}

// sniffLimit — сколько первых байт файла читается для определения типа.
const sniffLimit = 3072

// sniffPhoto — тип файла по его содержимому; заявленный клиентом тип и расширение не учитываются.
// Прочитанные байты возвращаются в f.Content, чтобы файл ушёл в бэкенд целиком.
// Пустая строка — тип не поддерживается.
func sniffPhoto(f *domain.UploadFile) (string, error) {
	if f.Content == nil {
		return "", nil
	}
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(f.Content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read %s: %w", f.Filename, err)
	}
	head = head[:n]
	f.Content = io.MultiReader(bytes.NewReader(head), f.Content)

	mt := mimetype.Detect(head)
	for _, t := range allowedPhotoTypes {
		if mt.Is(t) {
			return t, nil
		}
	}
	return "", nil
}

// matchUploads — раскладывает ответ бэкенда по ожидающим загрузкам (по имени файла).
func matchUploads(pending []*Upload, res *domain.UploadResult) (uploaded map[*Upload]domain.Photo, failed map[*Upload]string) {
	uploaded = make(map[*Upload]domain.Photo)
	failed = make(map[*Upload]string)

	take := func(filename string) *Upload {
		for _, u := range pending {
			if u.Filename != filename {
				continue
			}
			if _, ok := uploaded[u]; ok {
				continue
			}
			if _, ok := failed[u]; ok {
				continue
			}
			return u
		}
		return nil
	}

	for _, p := range res.UploadedPhotos {
		if u := take(p.Filename); u != nil {
			uploaded[u] = p
		}
	}
	for _, e := range res.Errors {
		if u := take(e.Filename); u != nil {
			failed[u] = e.Error
		}
	}
	for _, u := range pending {
		_, ok1 := uploaded[u]
		_, ok2 := failed[u]
		if !ok1 && !ok2 {
			failed[u] = "нет ответа по файлу"
		}
	}
	return uploaded, failed
}
