package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/adbridge/internal/ports"
	"github.com/Gunvolt24/adbridge/pkg/httpx"
)

// Пагинация списка изменений.
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handler — HTTP-обработчики чтения истории и пробы здоровья.
type Handler struct {
	service    ports.AdReadService
	probe      ports.HealthProbe
	log        ports.Logger
	reqTimeout time.Duration // 0 — без отдельного таймаута на запрос
}

func NewHandler(service ports.AdReadService, probe ports.HealthProbe, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{service: service, probe: probe, log: log, reqTimeout: reqTimeout}
}

// NewRouter — собирает gin.Engine. otelServiceName == "" — без otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		httpx.AbortWithError(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		c.Header("Allow", http.MethodGet)
		httpx.AbortWithError(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	internal := r.Group("/internal")
	internal.GET("/isAlive", h.isAlive)
	internal.GET("/isReady", h.isReady)

	r.GET("/ads", h.listRecent)
	r.GET("/ads/:uuid", h.getLatest)
	r.GET("/ads/:uuid/history", h.getHistory)
	r.GET("/stats/status", h.statusCounts)

	return r
}
