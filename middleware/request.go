package middleware

import (
	"time"

	"travel-app/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID tạo request id nếu client chưa gửi và gán vào context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}

// RequestLogger ghi log mỗi request sau khi xử lý xong
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		requestID := c.GetString(requestIDKey)
		switch {
		case status >= 500:
			log.Error("[%s] %s %s %d %s %s", requestID, c.Request.Method, path, status, latency, c.Errors.String())
		case status >= 400:
			log.Warn("[%s] %s %s %d %s", requestID, c.Request.Method, path, status, latency)
		default:
			log.Info("[%s] %s %s %d %s", requestID, c.Request.Method, path, status, latency)
		}
	}
}
