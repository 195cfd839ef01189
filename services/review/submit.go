package review

import (
	"context"
	"errors"

	"tourhub/models"
	"tourhub/services/events"
	"tourhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitReview creates a pending review once the tourist has an approved
// registration for a tour that has already ended. The checks run in order
// and the first failure is returned.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, in SubmitReviewInput) (*Result, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	reg, err := s.registrations.GetByID(ctx, in.RegistrationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, &utils.AppError{Kind: utils.KindNotFound, Message: "Valid registration not found"}
		}
		return nil, err
	}
	if reg.TouristID != in.TouristID || reg.CustomTourID != in.TourID {
		return nil, &utils.AppError{Kind: utils.KindNotFound, Message: "Valid registration not found"}
	}
	if reg.Status != models.RegistrationApproved {
		return nil, utils.Precondition("Registration must be approved before the tour can be reviewed")
	}

	tour, err := s.tours.GetByID(ctx, in.TourID)
	if err != nil {
		return nil, err
	}
	if !tour.HasEnded(now) {
		return nil, utils.Precondition("Cannot review tour before it ends")
	}

	if _, err := s.reviews.GetByTourAndTourist(ctx, in.TourID, in.TouristID); err == nil {
		return nil, utils.Conflict("Review already exists for this tour")
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	tourist, err := s.users.GetByID(ctx, in.TouristID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:                    uuid.New().String(),
		CustomTourID:          in.TourID,
		RegistrationID:        in.RegistrationID,
		TouristID:             in.TouristID,
		ProviderID:            tour.ProviderID,
		OverallRating:         in.OverallRating,
		OrganizationRating:    in.OrganizationRating,
		CommunicationRating:   in.CommunicationRating,
		ValueRating:           in.ValueRating,
		ExperienceRating:      in.ExperienceRating,
		Title:                 in.Title,
		ReviewText:            in.ReviewText,
		Pros:                  in.Pros,
		Cons:                  in.Cons,
		Status:                models.ReviewPending,
		IsVerifiedPurchase:    true,
		TouristName:           tourist.FullName(),
		TouristProfilePicture: tourist.ProfilePicture,
		TourName:              tour.TourName,
		ProviderName:          s.providerName(ctx, tour.ProviderID),
		TourStartDate:         tour.StartDate,
		TourEndDate:           tour.EndDate,
		CreatedBy:             in.TouristID,
		CreatedDate:           now,
		UpdatedDate:           now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.Conflict("Review already exists for this tour")
		}
		s.logger.Error("Failed to create review", zap.String("tourId", in.TourID), zap.Error(err))
		return nil, err
	}
	s.metrics.ReviewSubmitted()

	s.logger.Info("Review submitted",
		zap.String("reviewId", review.ID),
		zap.String("providerId", review.ProviderID),
		zap.Int("overallRating", review.OverallRating))

	result := &Result{Review: review, Warning: s.refreshRating(ctx, review.ProviderID)}

	events.Emit(ctx, s.publisher, s.logger, events.TypeReviewSubmitted, review.ProviderID, review)
	s.notifier.Dispatch(ctx, models.ReviewNotification{
		Target:   models.NotifyProvider,
		TargetID: review.ProviderID,
		ReviewID: review.ID,
		Title:    "New review received",
		Body:     review.TouristName + " reviewed " + review.TourName,
		Data:     map[string]string{"tourId": review.CustomTourID, "status": string(review.Status)},
	})
	return result, nil
}

// providerName snapshots the provider's display name. A failed lookup
// leaves it blank rather than blocking the review.
func (s *DefaultReviewService) providerName(ctx context.Context, providerID string) string {
	provider, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		s.logger.Warn("Provider lookup failed while snapshotting review",
			zap.String("providerId", providerID), zap.Error(err))
		return ""
	}
	return provider.ProviderName
}

// refreshRating recalculates the provider rating after a committed change.
// The change itself is never rolled back; a failure becomes a warning.
func (s *DefaultReviewService) refreshRating(ctx context.Context, providerID string) string {
	if _, err := s.ratings.Recalculate(ctx, providerID); err != nil {
		s.logger.Warn("Provider rating recalculation failed",
			zap.String("providerId", providerID), zap.Error(err))
		return ratingWarning
	}
	return ""
}
