package middleware

import (
	"time"

	"chartlab/internal"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request once the handler has finished
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		logf := logger.Info
		switch {
		case status >= 500:
			logf = logger.Error
		case status >= 400:
			logf = logger.Warn
		}
		logf("[API] %s %s %d %s id=%s", c.Request.Method, c.Request.URL.Path, status,
			time.Since(start).Round(time.Microsecond), c.GetString(RequestIDKey))
	}
}
