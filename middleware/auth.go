package middleware

import (
	"net/http"
	"strings"

	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware verifies the bearer token and stores the caller's id,
// role and provider in the gin context. Tokens are minted by the auth
// service; only the signature and expiry are checked here.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Error: "Missing or invalid Authorization header",
				Code:  utils.KindUnauthorized,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.ExtractIdentity(tokenString, secret)
		if err != nil {
			loggerFrom(c).Info("Token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Error: "Invalid token",
				Code:  utils.KindUnauthorized,
			})
			return
		}

		c.Set(utils.CtxUserID, identity.UserID)
		c.Set(utils.CtxUserRole, identity.Role)
		if identity.ProviderID != "" {
			c.Set(utils.CtxProviderID, identity.ProviderID)
		}
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated role is
// one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(utils.CtxUserRole)
		if !allowed[role] {
			loggerFrom(c).Info("Role not permitted",
				zap.String("role", role),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Error: "Insufficient permissions",
				Code:  utils.KindForbidden,
			})
			return
		}
		c.Next()
	}
}
