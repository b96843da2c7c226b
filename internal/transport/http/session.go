package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/usecase"
	"github.com/Gunvolt24/storage_portal/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie   = "sid"
	headerSessionID = "X-Session-ID"
	workspaceKey    = "workspace"
)

type establishRequest struct {
	AccessToken string `json:"access_token"`
}

type sessionResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionID(c *gin.Context) string {
	if sid, err := c.Cookie(sessionCookie); err == nil && sid != "" {
		return sid
	}
	return c.GetHeader(headerSessionID)
}

// requireSession — без живой сессии отвечает 401 до любого вызова бэкенда.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		ctx := c.Request.Context()
		ws, err := h.portal.Workspace(ctx, sid)
		if err != nil {
			if !usecase.IsUnauthorized(err) {
				h.log.Errorf(ctx, "resolve session failed: %v", err)
			}
			h.writeError(c, err)
			c.Abort()
			return
		}
		ctx = ctxmeta.WithUserID(ctxmeta.WithSessionID(ctx, sid), ws.Session().UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(workspaceKey, ws)
		c.Next()
	}
}

func workspace(c *gin.Context) *usecase.Workspace {
	return c.MustGet(workspaceKey).(*usecase.Workspace)
}

// establishSession — токен берётся из тела или из Authorization: Bearer.
func (h *Handler) establishSession(c *gin.Context) {
	var req establishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
	}
	if req.AccessToken == "" {
		req.AccessToken = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}

	s, err := h.portal.Establish(c.Request.Context(), req.AccessToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, s.ID, max(maxAge, 1), "/", "", h.opts.CookieSecure, true)
	c.JSON(http.StatusCreated, sessionResponse{SessionID: s.ID, UserID: s.UserID, ExpiresAt: s.ExpiresAt})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.portal.Logout(c.Request.Context(), sessionID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.opts.CookieSecure, true)
	c.Status(http.StatusNoContent)
}
