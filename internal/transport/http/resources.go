package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const headerStale = "X-Data-Stale"

// respond — данные из кэша. Если обновление не удалось, а старое значение есть,
// отдаём его с заголовком X-Data-Stale и текстом ошибки.
func respond[T any](h *Handler, c *gin.Context, v *T, err error) {
	if err != nil && v == nil {
		h.writeError(c, err)
		return
	}
	if err != nil {
		c.Header(headerStale, domain.NormalizeError(err).Message)
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := workspace(c).Profile(c.Request.Context())
	respond(h, c, p, err)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	p, err := workspace(c).UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listBoxes(c *gin.Context) {
	list, err := workspace(c).Boxes(c.Request.Context())
	respond(h, c, list, err)
}

func (h *Handler) getBox(c *gin.Context) {
	box, err := workspace(c).Box(c.Request.Context(), c.Param("id"))
	respond(h, c, box, err)
}

func (h *Handler) updateBox(c *gin.Context) {
	var patch domain.BoxPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	box, err := workspace(c).UpdateBox(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, box)
}

func (h *Handler) updateBoxStatus(c *gin.Context) {
	var req domain.BoxStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	msg, err := workspace(c).UpdateBoxStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) listOrders(c *gin.Context) {
	list, err := workspace(c).Orders(c.Request.Context(), httpx.ParseOrderFilter(c))
	respond(h, c, list, err)
}

func (h *Handler) createOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := workspace(c).CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := workspace(c).Order(c.Request.Context(), c.Param("id"))
	respond(h, c, order, err)
}

func (h *Handler) updateOrder(c *gin.Context) {
	var patch domain.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	order, err := workspace(c).UpdateOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) uploadPhotos(c *gin.Context) {
	files, closeAll, err := h.multipartFiles(c)
	if err != nil {
		bindError(c, err)
		return
	}
	defer closeAll()

	res, err := workspace(c).UploadPhotos(c.Request.Context(), c.PostForm("session_id"), files)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(res.StatusCode(), res)
}

func (h *Handler) deletePhoto(c *gin.Context) {
	msg, err := workspace(c).DeletePhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) listSessionPhotos(c *gin.Context) {
	list, err := workspace(c).SessionPhotos(c.Request.Context(), c.Param("sessionId"))
	respond(h, c, list, err)
}

func (h *Handler) listSlots(c *gin.Context) {
	var rng domain.SlotRange
	if err := c.ShouldBindJSON(&rng); err != nil {
		bindError(c, err)
		return
	}
	list, err := workspace(c).Slots(c.Request.Context(), rng)
	respond(h, c, list, err)
}

// subscription — сквозной вызов: статус и тело бэкенда как есть.
func (h *Handler) subscription(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		bindError(c, err)
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return
	}

	res, err := workspace(c).Subscription(c.Request.Context(), c.Param("action"), body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if len(res.Body) == 0 {
		c.Status(res.Status)
		return
	}
	c.Data(res.Status, "application/json; charset=utf-8", res.Body)
}
