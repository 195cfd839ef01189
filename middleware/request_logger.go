package middleware

import (
	"time"

	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and stores a child logger
// carrying it under utils.CtxLogger.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		logger := base.With(zap.String("requestId", requestID))
		c.Set(utils.CtxRequestID, requestID)
		c.Set(utils.CtxLogger, logger)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)))
	}
}

func loggerFrom(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(utils.CtxLogger); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
