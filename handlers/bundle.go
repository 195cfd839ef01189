package handlers

import (
	userRepo "tourhub/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo  userRepo.UserRepository
	JWTSecret string

	// Review endpoints
	ListReviewsHandler     gin.HandlerFunc
	GetReviewHandler       gin.HandlerFunc
	CreateReviewHandler    gin.HandlerFunc
	ModerateReviewHandler  gin.HandlerFunc
	RespondToReviewHandler gin.HandlerFunc
	VoteReviewHandler      gin.HandlerFunc

	// Rating endpoints
	GetProviderRatingHandler gin.HandlerFunc

	// Operational endpoints
	HealthHandler gin.HandlerFunc
}
