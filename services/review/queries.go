package review

import (
	"context"
	"errors"

	"tourhub/models"
	"tourhub/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func (s *DefaultReviewService) GetReview(ctx context.Context, reviewID string) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, &utils.AppError{Kind: utils.KindNotFound, Message: "Review not found"}
		}
		return nil, err
	}
	return review, nil
}

// ListReviews returns one page of reviews, newest first. Without an
// explicit status only approved reviews are listed.
func (s *DefaultReviewService) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, models.Pagination, error) {
	if filter.Status == "" {
		filter.Status = models.ReviewApproved
	} else if !filter.Status.Valid() {
		return nil, models.Pagination{}, utils.Validation("unknown review status " + string(filter.Status))
	}
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	reviews, total, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return reviews, models.NewPagination(filter.Page, filter.Limit, total), nil
}
