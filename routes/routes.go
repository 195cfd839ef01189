package routes

import (
	"time"

	"tourhub/handlers"
	"tourhub/middleware"
	"tourhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterReviewRoutes registers review and rating endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		// Public reads
		api.GET("", hb.ListReviewsHandler)
		api.GET("/:id", hb.GetReviewHandler)
		api.GET("/provider/:providerId/rating", hb.GetProviderRatingHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		protected.POST("",
			middleware.RequireRole(utils.RoleTourist),
			middleware.RequireCompleteProfile(hb.UserRepo),
			hb.CreateReviewHandler)
		protected.PATCH("/:id/moderate",
			middleware.RequireRole(utils.RoleSystemAdmin),
			middleware.RequireCompleteProfile(hb.UserRepo),
			hb.ModerateReviewHandler)
		protected.POST("/:id/respond",
			middleware.RequireRole(utils.RoleProviderAdmin),
			middleware.RequireCompleteProfile(hb.UserRepo),
			hb.RespondToReviewHandler)
		protected.POST("/:id/vote", hb.VoteReviewHandler)
	}
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
