package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"study-team-api/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics returns a middleware that records HTTP metrics under the route pattern. Requests that
// match no route share one label, and websocket upgrades are skipped since their duration is the
// lifetime of the stream.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) || isWebSocketUpgrade(c) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func isWebSocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}
