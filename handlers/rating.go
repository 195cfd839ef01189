package handlers

import (
	"net/http"
	"time"

	"tourhub/services/rating"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves provider rating reads.
type RatingHandler struct {
	Service   rating.RatingService
	Staleness time.Duration
}

func NewRatingHandler(svc rating.RatingService, staleness time.Duration) *RatingHandler {
	return &RatingHandler{Service: svc, Staleness: staleness}
}

// GetProviderRatingHandler handles GET /api/reviews/provider/:providerId/rating.
// The record is created on first access and recalculated once stale.
func (h *RatingHandler) GetProviderRatingHandler(c *gin.Context) {
	r, err := h.Service.GetOrRefresh(c.Request.Context(), c.Param("providerId"), h.Staleness)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider rating retrieved successfully", "rating": r})
}
