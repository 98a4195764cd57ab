package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orbita/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records request count and latency per route pattern.
// The route is gin's FullPath so ids do not blow up label cardinality.
func HTTPMetrics(metrics *telemetry.Metrics) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
