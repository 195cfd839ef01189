package handlers

import (
	"net/http"

	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger set by the request logger
// middleware, falling back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(utils.CtxLogger); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

func bindError(c *gin.Context, err error) {
	getLogger(c).Info("Invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, utils.ErrorResponse{
		Error:   "Invalid request",
		Code:    utils.KindValidation,
		Details: err.Error(),
	})
}
