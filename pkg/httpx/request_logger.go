package httpx

import (
	"time"

	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — одна строка на запрос.
// 5xx пишутся уровнем Warn, 4xx и остальное — Info; служебные маршруты не пишутся.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics", "/ping":
			return
		case "":
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		tr, _ := ctxmeta.TraceFromContext(ctx)
		status := c.Writer.Status()

		logf := log.Infof
		if status >= 500 {
			logf = log.Warnf
		}
		logf(ctx,
			"request method=%s path=%s status=%d ip=%s duration=%s size=%d trace=%s span=%s stale=%t",
			c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size(),
			tr.TraceID, tr.SpanID, c.Writer.Header().Get("X-Data-Stale") != "",
		)
	}
}
