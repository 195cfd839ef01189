package review

import (
	"context"
	"errors"

	"tourhub/models"
	"tourhub/services/events"
	"tourhub/utils"

	"go.uber.org/zap"
)

// ModerateReview moves a review to approved, rejected or flagged from any
// prior status and recalculates the provider rating every time.
func (s *DefaultReviewService) ModerateReview(ctx context.Context, reviewID string, status models.ReviewStatus, notes, moderatorID string) (*Result, error) {
	if err := validateModerationStatus(status); err != nil {
		return nil, err
	}

	review, err := s.reviews.UpdateModeration(ctx, reviewID, status, notes, moderatorID, s.now().UTC())
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, &utils.AppError{Kind: utils.KindNotFound, Message: "Review not found"}
		}
		return nil, err
	}

	s.logger.Info("Review moderated",
		zap.String("reviewId", review.ID),
		zap.String("status", string(status)),
		zap.String("moderatorId", moderatorID))

	result := &Result{Review: review, Warning: s.refreshRating(ctx, review.ProviderID)}

	events.Emit(ctx, s.publisher, s.logger, events.TypeReviewModerated, review.ProviderID, review)
	s.notifier.Dispatch(ctx, models.ReviewNotification{
		Target:   models.NotifyTourist,
		TargetID: review.TouristID,
		ReviewID: review.ID,
		Title:    "Your review was " + string(status),
		Body:     "Your review of " + review.TourName + " is now " + string(status),
		Data:     map[string]string{"status": string(status)},
	})
	return result, nil
}

// RespondToReview sets or replaces the provider's reply. Only an admin of
// the reviewed provider may respond. Ratings are unaffected.
func (s *DefaultReviewService) RespondToReview(ctx context.Context, reviewID, responseText, providerUserID string) (*models.Review, error) {
	if err := validateResponse(responseText); err != nil {
		return nil, err
	}

	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	responder, err := s.users.GetByID(ctx, providerUserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.Forbidden("Not authorized to respond to this review")
		}
		return nil, err
	}
	if responder.ProviderID == "" || responder.ProviderID != review.ProviderID {
		return nil, utils.Forbidden("Not authorized to respond to this review")
	}

	updated, err := s.reviews.SetProviderResponse(ctx, reviewID, models.ProviderResponse{
		ResponseText: responseText,
		RespondedBy:  providerUserID,
		RespondedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.publisher, s.logger, events.TypeReviewResponded, updated.ProviderID, updated)
	s.notifier.Dispatch(ctx, models.ReviewNotification{
		Target:   models.NotifyTourist,
		TargetID: updated.TouristID,
		ReviewID: updated.ID,
		Title:    updated.ProviderName + " responded to your review",
		Body:     responseText,
	})
	return updated, nil
}
