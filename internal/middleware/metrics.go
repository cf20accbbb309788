package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"community-feed-api/internal/metrics"
)

// unmatchedRoute labels requests no route matched, keeping raw paths out of label values
const unmatchedRoute = "unmatched"

// Metrics records count and latency of every request by method, route template and status class
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if metrics.ShouldSkipEndpoint(route) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
