package middleware

import (
	"strconv"
	"time"

	"penguin-service/metrics"

	"github.com/gin-gonic/gin"
)

// unmatchedEndpoint labels requests that hit no registered route, keeping
// label cardinality bounded.
const unmatchedEndpoint = "unmatched"

// MetricsMiddleware - count requests and observe latency per route
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedEndpoint
		}

		metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}
