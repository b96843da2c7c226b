package httpx

import (
	"strconv"
	"strings"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	DefaultOrdersLimit = 20
	MaxOrdersLimit     = 100
)

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset - читает limit/offset из query с дефолтами и границами.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return
}

// ParseOrderFilter — фильтры списка заказов: status + limit/offset.
// Неизвестный статус отбрасывается (бэкенд вернёт всё).
func ParseOrderFilter(c *gin.Context) domain.OrderFilter {
	limit, offset := ParseLimitOffset(c, DefaultOrdersLimit, MaxOrdersLimit)
	f := domain.OrderFilter{Limit: limit, Offset: offset}

	switch st := domain.OrderStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))); st {
	case domain.OrderStatusPending, domain.OrderStatusConfirmed, domain.OrderStatusCompleted, domain.OrderStatusCancelled:
		f.Status = string(st)
	}
	return f
}
