package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// ParseUUIDParam — читает path-параметр и проверяет, что это UUID.
// При ошибке сам пишет 400 и возвращает ok=false.
func ParseUUIDParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if err := uuid.Validate(raw); err != nil {
		AbortWithError(c, http.StatusBadRequest, "invalid "+name)
		return "", false
	}
	return raw, true
}

// AbortWithError — JSON-ответ об ошибке в едином формате {"error": "..."}.
func AbortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
