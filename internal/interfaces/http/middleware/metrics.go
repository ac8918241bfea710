package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts and latency per route template, keeping
// label cardinality bounded regardless of path parameters.
func Metrics(m *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route,
			strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
