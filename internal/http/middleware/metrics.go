package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"chem.app/api/common/metrics"
)

// Metrics records request counts and latency by route template, so
// /organizations/1 and /organizations/2 share one series. Unmatched
// requests are recorded under "unmatched".
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncInFlight()
		defer metrics.DecInFlight()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
