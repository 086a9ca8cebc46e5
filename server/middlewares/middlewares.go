package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const (
	RequestIdHeader = "X-Request-Id"
	RequestIdKey    = "request_id"
)

// RequestId keeps the caller's X-Request-Id or assigns a new one, and echoes
// it in the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIdKey, id)
		c.Header(RequestIdHeader, id)
		c.Next()
	}
}

// AccessLog writes one log line per request once it is served.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := Logger.Log.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIdKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Errorln(c.Errors.String())
			return
		}
		entry.Infoln("served request")
	}
}
