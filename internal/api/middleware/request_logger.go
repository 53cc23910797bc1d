package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request with the request id. Paths in skip
// (e.g. /metrics) are logged at debug level only.
func RequestLogger(skip ...string) gin.HandlerFunc {
	quiet := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		quiet[p] = struct{}{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := GetRequestLogger(c).WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    SanitizePath(c.Request.URL.Path),
			"latency": time.Since(start).String(),
			"bytes":   c.Writer.Size(),
			"client":  c.ClientIP(),
		})
		if _, ok := quiet[c.FullPath()]; ok {
			entry.Debug("handled request")
			return
		}
		entry.Info("handled request")
	}
}
