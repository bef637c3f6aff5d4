package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/pkg/httpx"
)

const errInternal = "internal server error"

// isAlive — liveness: процесс жив, пока консьюмеры не признали его нездоровым.
func (h *Handler) isAlive(c *gin.Context) {
	if !h.probe.IsHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// isReady — readiness: старт завершён и процесс здоров.
func (h *Handler) isReady(c *gin.Context) {
	if !h.probe.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) getLatest(c *gin.Context) {
	id, ok := httpx.ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	entry, err := h.service.LatestAd(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "LatestAd failed uuid=%s err=%v", id, err)
		httpx.AbortWithError(c, http.StatusInternalServerError, errInternal)
		return
	}
	if entry == nil {
		httpx.AbortWithError(c, http.StatusNotFound, "ad not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) getHistory(c *gin.Context) {
	id, ok := httpx.ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	history, err := h.service.AdHistory(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "AdHistory failed uuid=%s err=%v", id, err)
		httpx.AbortWithError(c, http.StatusInternalServerError, errInternal)
		return
	}
	if len(history) == 0 {
		httpx.AbortWithError(c, http.StatusNotFound, "ad not found")
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) listRecent(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, defaultListLimit, maxListLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	entries, err := h.service.RecentChanges(ctx, limit, offset)
	if err != nil {
		h.log.Errorf(ctx, "RecentChanges failed limit=%d offset=%d err=%v", limit, offset, err)
		httpx.AbortWithError(c, http.StatusInternalServerError, errInternal)
		return
	}
	if entries == nil {
		entries = []domain.AdHistoryEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) statusCounts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	counts, err := h.service.StatusCounts(ctx)
	if err != nil {
		h.log.Errorf(ctx, "StatusCounts failed err=%v", err)
		httpx.AbortWithError(c, http.StatusInternalServerError, errInternal)
		return
	}
	if counts == nil {
		counts = map[string]int64{}
	}
	c.JSON(http.StatusOK, counts)
}

// requestContext — контекст запроса с таймаутом обработчика.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}
