package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"github.com/nodebucket/nodebucket/pkg/metrics"
)

// RequestLogger logs one line per request through the package logger and
// records the HTTP metrics. Unmatched routes are labelled "unmatched".
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		emp, _ := SessionEmployeeID(c)
		switch {
		case status >= 500:
			logger.Errorf("%s %s -> %d (%s) emp=%q", c.Request.Method, c.Request.URL.Path, status, elapsed, emp)
		case status >= 400:
			logger.Warnf("%s %s -> %d (%s) emp=%q", c.Request.Method, c.Request.URL.Path, status, elapsed, emp)
		default:
			logger.Debugf("%s %s -> %d (%s) emp=%q", c.Request.Method, c.Request.URL.Path, status, elapsed, emp)
		}
	}
}
