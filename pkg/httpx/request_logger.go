package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/adbridge/internal/ports"
)

// quietPaths — служебные маршруты, которые дёргаются часто и в логах не нужны.
var quietPaths = map[string]struct{}{
	"/metrics":          {},
	"/ping":             {},
	"/internal/isAlive": {},
	"/internal/isReady": {},
}

// RequestLogger — middleware для логирования HTTP-запросов.
// request_id/trace_id/span_id логгер берёт из контекста сам.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, quiet := quietPaths[path]; quiet {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		if status >= 500 {
			logf = log.Errorf
		}

		logf(
			c.Request.Context(),
			"request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			status,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
