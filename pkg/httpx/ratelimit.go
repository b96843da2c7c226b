package httpx

import (
	"net/http"
	"sync"
	"time"

	"github.com/Gunvolt24/storage_portal/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter — ограничение частоты запросов по сессии (или IP, если сессии нет).
// Используется для тяжёлых эндпоинтов (загрузка фото).
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

// Allow — разрешён ли очередной запрос для ключа.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	ent, ok := rl.limiters[key]
	if !ok {
		rl.pruneIdle(now)
		ent = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = ent
	}
	ent.lastSeen = now
	return ent.limiter.AllowN(now, 1)
}

// pruneIdle — выкидывает лимитеры, к которым давно не обращались.
func (rl *RateLimiter) pruneIdle(now time.Time) {
	for k, ent := range rl.limiters {
		if now.Sub(ent.lastSeen) > rl.idleTTL {
			delete(rl.limiters, k)
		}
	}
}

// Middleware — 429 {error} при превышении лимита.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := ctxmeta.SessionIDFromContext(c.Request.Context())
		if !ok {
			key = c.ClientIP()
		}
		if !rl.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
