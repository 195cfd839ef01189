package ratingRepo

import (
	"context"

	"tourhub/models"
)

// RatingRepository is the data-access contract for the provider_ratings
// materialized view. It holds no business logic; the rating aggregator is
// the only caller of Upsert.
type RatingRepository interface {
	// Get returns the stored record for providerID, or a NotFound error.
	Get(ctx context.Context, providerID string) (*models.ProviderRating, error)
	// Upsert writes every derived field of rating in a single operation,
	// creating the document when the provider has none yet.
	Upsert(ctx context.Context, rating *models.ProviderRating) error
}
