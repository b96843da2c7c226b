package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
	"github.com/Gunvolt24/storage_portal/internal/wizard"
	"github.com/Gunvolt24/storage_portal/pkg/validate"
	"github.com/gin-gonic/gin"
)

// errorBody — единый формат ошибки; fields только для 422.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError — приводит ошибку к {error} со статусом апстрима или локальной проверки.
func (h *Handler) writeError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "request failed status=%d: %v", status, err)
	}
	c.JSON(status, body)
}

func errorResponse(err error) (int, errorBody) {
	var vErr *wizard.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: vErr.Fields}
	case errors.Is(err, validate.ErrInvalidDraft):
		return http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: validate.Fields(err)}
	case errors.Is(err, querycache.ErrMutationInFlight),
		errors.Is(err, wizard.ErrSubmitInFlight),
		errors.Is(err, wizard.ErrUploadSettled),
		errors.Is(err, wizard.ErrWizardClosed),
		errors.Is(err, wizard.ErrNotOpen):
		return http.StatusConflict, errorBody{Error: err.Error()}
	case errors.Is(err, wizard.ErrUnknownUpload), errors.Is(err, wizard.ErrUnknownPhoto):
		return http.StatusNotFound, errorBody{Error: err.Error()}
	case errors.Is(err, wizard.ErrAssistedUnsupported):
		return http.StatusUnprocessableEntity, errorBody{
			Error:  err.Error(),
			Fields: map[string]string{"service_type": err.Error()},
		}
	}

	apiErr := domain.NormalizeError(err)
	return apiErr.Status, errorBody{Error: apiErr.Message}
}

// bindError — тело запроса не разобралось.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
}
