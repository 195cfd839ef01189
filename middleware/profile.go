package middleware

import (
	"errors"
	"net/http"
	"strings"

	userRepo "tourhub/database/repository/user"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireCompleteProfile blocks callers whose profile is missing fields
// that reviews display or moderation relies on.
func RequireCompleteProfile(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(utils.CtxUserID)
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
					Error: "User not found",
					Code:  utils.KindUnauthorized,
				})
				return
			}
			loggerFrom(c).Error("Profile lookup failed", zap.String("userId", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
				Error: utils.PublicMessage(err),
				Code:  utils.KindPersistence,
			})
			return
		}

		if missing := user.MissingProfileFields(); len(missing) > 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Error:   "Please complete your profile before continuing",
				Code:    utils.KindForbidden,
				Details: "missing: " + strings.Join(missing, ", "),
			})
			return
		}
		c.Next()
	}
}
