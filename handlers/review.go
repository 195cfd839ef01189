package handlers

import (
	"net/http"
	"strconv"

	"tourhub/models"
	"tourhub/services/review"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves the /api/reviews endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// CreateReviewRequest is the body of POST /api/reviews.
type CreateReviewRequest struct {
	CustomTourID        string   `json:"custom_tour_id" binding:"required"`
	RegistrationID      string   `json:"registration_id" binding:"required"`
	OverallRating       int      `json:"overall_rating" binding:"required,min=1,max=5"`
	OrganizationRating  *int     `json:"organization_rating" binding:"omitempty,min=1,max=5"`
	CommunicationRating *int     `json:"communication_rating" binding:"omitempty,min=1,max=5"`
	ValueRating         *int     `json:"value_rating" binding:"omitempty,min=1,max=5"`
	ExperienceRating    *int     `json:"experience_rating" binding:"omitempty,min=1,max=5"`
	Title               string   `json:"title" binding:"max=100"`
	ReviewText          string   `json:"review_text" binding:"max=2000"`
	Pros                []string `json:"pros"`
	Cons                []string `json:"cons"`
}

type ModerateReviewRequest struct {
	Status          models.ReviewStatus `json:"status" binding:"required"`
	ModerationNotes string              `json:"moderation_notes"`
}

type RespondToReviewRequest struct {
	ResponseText string `json:"response_text" binding:"required,max=1000"`
}

type VoteReviewRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

// ListReviewsHandler handles GET /api/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	filter := models.ReviewFilter{
		TourID:     c.Query("tour_id"),
		ProviderID: c.Query("provider_id"),
		Status:     models.ReviewStatus(c.Query("status")),
	}
	var err error
	if filter.Page, err = queryInt(c, "page"); err != nil {
		bindError(c, err)
		return
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		bindError(c, err)
		return
	}

	reviews, pagination, err := h.Service.ListReviews(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Reviews retrieved successfully",
		"reviews":    reviews,
		"pagination": pagination,
	})
}

// GetReviewHandler handles GET /api/reviews/:id.
func (h *ReviewHandler) GetReviewHandler(c *gin.Context) {
	r, err := h.Service.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review retrieved successfully", "review": r})
}

// CreateReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.Service.SubmitReview(c.Request.Context(), review.SubmitReviewInput{
		TourID:              req.CustomTourID,
		RegistrationID:      req.RegistrationID,
		TouristID:           c.GetString(utils.CtxUserID),
		OverallRating:       req.OverallRating,
		OrganizationRating:  req.OrganizationRating,
		CommunicationRating: req.CommunicationRating,
		ValueRating:         req.ValueRating,
		ExperienceRating:    req.ExperienceRating,
		Title:               req.Title,
		ReviewText:          req.ReviewText,
		Pros:                req.Pros,
		Cons:                req.Cons,
	})
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}

	body := gin.H{"message": "Review created successfully", "review": res.Review}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	c.JSON(http.StatusCreated, body)
}

// ModerateReviewHandler handles PATCH /api/reviews/:id/moderate.
func (h *ReviewHandler) ModerateReviewHandler(c *gin.Context) {
	var req ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.Service.ModerateReview(c.Request.Context(), c.Param("id"), req.Status, req.ModerationNotes, c.GetString(utils.CtxUserID))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}

	body := gin.H{"message": "Review moderated successfully", "review": res.Review}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	c.JSON(http.StatusOK, body)
}

// RespondToReviewHandler handles POST /api/reviews/:id/respond.
func (h *ReviewHandler) RespondToReviewHandler(c *gin.Context) {
	var req RespondToReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.Service.RespondToReview(c.Request.Context(), c.Param("id"), req.ResponseText, c.GetString(utils.CtxUserID))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Response added successfully", "review": r})
}

// VoteReviewHandler handles POST /api/reviews/:id/vote.
func (h *ReviewHandler) VoteReviewHandler(c *gin.Context) {
	var req VoteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.Service.VoteHelpful(c.Request.Context(), c.Param("id"), c.GetString(utils.CtxUserID), *req.Helpful)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Vote recorded",
		"helpful_votes":     r.HelpfulVotes,
		"not_helpful_votes": r.NotHelpfulVotes,
	})
}

// queryInt reads an optional positive integer query parameter; absent
// yields 0 so the service applies its default.
func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, utils.Validation(key + " must be a positive integer")
	}
	return n, nil
}
