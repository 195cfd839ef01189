package reviewRepo

import (
	"context"
	"time"

	"tourhub/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a new review. A second review for the same
	// (tour, tourist) pair fails with a Conflict error.
	Create(ctx context.Context, review *models.Review) error
	// GetByID retrieves a review by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// GetByTourAndTourist retrieves the review a tourist wrote for a tour.
	GetByTourAndTourist(ctx context.Context, tourID, touristID string) (*models.Review, error)
	// List returns one page of reviews matching filter, newest first, and
	// the total number of matches.
	List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, int64, error)
	// ListApprovedByProvider returns every approved review for a provider.
	ListApprovedByProvider(ctx context.Context, providerID string) ([]models.Review, error)
	// SummarizeApproved computes the provider's rating summary inside the store.
	SummarizeApproved(ctx context.Context, providerID string, recentSince time.Time) (*models.RatingSummary, error)
	// UpdateModeration sets status and moderation metadata and returns the updated review.
	UpdateModeration(ctx context.Context, id string, status models.ReviewStatus, notes, moderatorID string, at time.Time) (*models.Review, error)
	// SetProviderResponse sets or overwrites the provider response and returns the updated review.
	SetProviderResponse(ctx context.Context, id string, response models.ProviderResponse) (*models.Review, error)
	// SetVoteCounts overwrites the helpful counters with a fresh tally.
	SetVoteCounts(ctx context.Context, id string, tally models.VoteTally) error
}
