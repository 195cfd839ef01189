package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string    `json:"error"`
	Code    ErrorKind `json:"code,omitempty"`
	Details string    `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details), zap.String("path", c.Request.URL.Path))
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// RespondError maps err onto its status and kind. Persistence failures are
// logged at error level and never leak driver detail to the client.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	kind := KindOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("kind", string(kind)), zap.Error(err))
	} else {
		logger.Info("request rejected", zap.String("kind", string(kind)), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Error: PublicMessage(err), Code: kind})
}
