package rest

import (
	"context"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/internal/usecase"
	"github.com/Gunvolt24/storage_portal/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	defaultHandlerTimeout = 15 * time.Second
	defaultMaxUploadBytes = 50 << 20
)

// Options — настройки HTTP-слоя.
type Options struct {
	HandlerTimeout time.Duration
	MaxUploadBytes int64
	CookieSecure   bool
	UploadRPS      float64
	UploadBurst    int
}

type Handler struct {
	portal  *usecase.Portal
	log     ports.Logger
	opts    Options
	uploads *httpx.RateLimiter
}

func NewHandler(portal *usecase.Portal, log ports.Logger, opts Options) *Handler {
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = defaultHandlerTimeout
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.UploadRPS <= 0 {
		opts.UploadRPS = 2
	}
	if opts.UploadBurst <= 0 {
		opts.UploadBurst = 5
	}
	return &Handler{
		portal:  portal,
		log:     log,
		opts:    opts,
		uploads: httpx.NewRateLimiter(opts.UploadRPS, opts.UploadBurst),
	}
}

// NewRouter — маршруты /api и служебные /ping, /metrics.
// otelServiceName пустой — без трейсинга запросов.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", h.withTimeout())
	api.POST("/auth/session", h.establishSession)
	api.DELETE("/auth/session", h.logout)

	authed := api.Group("", h.requireSession())
	{
		authed.GET("/users/me", h.getProfile)
		authed.PATCH("/users/me", h.updateProfile)

		authed.GET("/boxes", h.listBoxes)
		authed.GET("/boxes/:id", h.getBox)
		authed.PATCH("/boxes/:id", h.updateBox)
		authed.PATCH("/boxes/:id/status", h.updateBoxStatus)

		authed.GET("/orders", h.listOrders)
		authed.POST("/orders", h.createOrder)
		authed.GET("/orders/:id", h.getOrder)
		authed.PATCH("/orders/:id", h.updateOrder)

		authed.POST("/photos/upload", h.uploads.Middleware(), h.uploadPhotos)
		authed.DELETE("/photos/:id", h.deletePhoto)
		authed.GET("/photos/session/:sessionId", h.listSessionPhotos)

		authed.POST("/slots", h.listSlots)
		authed.POST("/subscriptions/:action", h.subscription)
	}

	wiz := authed.Group("/wizard")
	{
		wiz.GET("", h.wizardView)
		wiz.POST("/open", h.wizardOpen)
		wiz.POST("/close", h.wizardClose)
		wiz.POST("/advance", h.wizardAdvance)
		wiz.POST("/retreat", h.wizardRetreat)
		wiz.PATCH("/draft", h.wizardUpdateDraft)
		wiz.POST("/quantity/increment", h.wizardIncrement)
		wiz.POST("/quantity/decrement", h.wizardDecrement)
		wiz.PUT("/slot", h.wizardSelectSlot)
		wiz.DELETE("/slot", h.wizardClearSlot)
		wiz.POST("/photos", h.uploads.Middleware(), h.wizardUpload)
		wiz.DELETE("/photos/:ref", h.wizardRemovePhoto)
		wiz.DELETE("/uploads/:id", h.wizardAbandonUpload)
		wiz.POST("/submit", h.wizardSubmit)
	}

	return r
}

// withTimeout — дедлайн на обработку запроса; вызовы бэкенда его наследуют.
func (h *Handler) withTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.HandlerTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
