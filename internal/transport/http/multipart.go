package rest

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/gin-gonic/gin"
)

const filesField = "files"

var errNoFiles = errors.New("no files in form field \"files\"")

// multipartFiles — открывает файлы формы; closeAll закрывает их после отправки.
func (h *Handler) multipartFiles(c *gin.Context) ([]domain.UploadFile, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, err
	}
	headers := form.File[filesField]
	if len(headers) == 0 {
		return nil, func() {}, errNoFiles
	}

	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, domain.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}
	return files, closeAll, nil
}
