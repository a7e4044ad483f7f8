package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const keyLogger = "logger"

// AccessLog writes one logrus entry per request once the handler chain returns.
// It also stores a request-scoped logger for the handlers, see GetLogger.
func AccessLog(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(keyLogger, log.WithField("request_id", GetRequestID(c)))
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

// GetLogger returns the logger stored by AccessLog, falling back to the
// standard logrus logger outside a routed request.
func GetLogger(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(keyLogger); ok {
		if log, ok := v.(logrus.FieldLogger); ok {
			return log
		}
	}
	return logrus.StandardLogger()
}
