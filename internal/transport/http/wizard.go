package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/wizard"
	"github.com/gin-gonic/gin"
)

type selectSlotRequest struct {
	SlotID    string `json:"slot_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// wizardResult — ответ на действие мастера: снимок или ошибка.
func (h *Handler) wizardResult(c *gin.Context, view wizard.View, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) wizardView(c *gin.Context) {
	c.JSON(http.StatusOK, workspace(c).Wizard().View())
}

func (h *Handler) wizardOpen(c *gin.Context) {
	c.JSON(http.StatusOK, workspace(c).OpenWizard(c.Request.Context()))
}

func (h *Handler) wizardClose(c *gin.Context) {
	c.JSON(http.StatusOK, workspace(c).Wizard().Close())
}

func (h *Handler) wizardAdvance(c *gin.Context) {
	view, err := workspace(c).Wizard().Advance()
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardRetreat(c *gin.Context) {
	view, err := workspace(c).Wizard().Retreat()
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardUpdateDraft(c *gin.Context) {
	var p wizard.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	view, err := workspace(c).Wizard().UpdateDraft(p)
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardIncrement(c *gin.Context) {
	view, err := workspace(c).Wizard().IncrementQuantity()
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardDecrement(c *gin.Context) {
	view, err := workspace(c).Wizard().DecrementQuantity()
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardSelectSlot(c *gin.Context) {
	var req selectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	view, err := workspace(c).SelectSlot(c.Request.Context(), req.SlotID,
		domain.SlotRange{StartDate: req.StartDate, EndDate: req.EndDate})
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardClearSlot(c *gin.Context) {
	view, err := workspace(c).Wizard().ClearSlot()
	h.wizardResult(c, view, err)
}

// wizardUpload — 201 все файлы приняты, 206 часть, 422 ни одного;
// сбой бэкенда отдаётся с его статусом.
func (h *Handler) wizardUpload(c *gin.Context) {
	files, closeAll, err := h.multipartFiles(c)
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeAll()

	report, err := workspace(c).Wizard().Upload(c.Request.Context(), files)
	if err != nil {
		if report == nil || errors.Is(err, wizard.ErrWizardClosed) || !rejectsFiles(err) {
			h.writeError(c, err)
			return
		}
		// бэкенд отклонил сами файлы: причина уже в отчёте
		h.log.Warnf(c.Request.Context(), "wizard upload rejected: %v", err)
	}
	c.JSON(report.StatusCode(), report)
}

// rejectsFiles — 4xx бэкенда про содержимое загрузки; 401, 429, 5xx и сетевые ошибки
// отдаются клиенту со своим статусом.
func rejectsFiles(err error) bool {
	status := domain.NormalizeError(err).Status
	switch {
	case status == http.StatusUnauthorized, status == http.StatusTooManyRequests:
		return false
	default:
		return status >= 400 && status < 500
	}
}

func (h *Handler) wizardRemovePhoto(c *gin.Context) {
	view, err := workspace(c).Wizard().RemovePhoto(c.Request.Context(), c.Param("ref"))
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardAbandonUpload(c *gin.Context) {
	view, err := workspace(c).Wizard().AbandonUpload(c.Param("id"))
	h.wizardResult(c, view, err)
}

func (h *Handler) wizardSubmit(c *gin.Context) {
	order, err := workspace(c).Wizard().Submit(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
