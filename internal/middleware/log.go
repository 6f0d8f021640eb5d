package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/igorvsx/WalletControlAPI/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLog tags every request with an X-Request-ID and, when access
// logging is enabled, writes one access log line after the handler runs.
// The request id is assigned either way.
func RequestLog(access bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		if !access {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		log.Printf("%s %s %d %s rid=%s ip=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			requestID,
			c.ClientIP(),
		)
	}
}

// Metrics counts finished requests by method, matched route and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
