package memory

import (
	"context"
	"sync"

	"tourhub/models"
	"tourhub/utils"
)

// RatingRepository keeps provider rating records in memory.
type RatingRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.ProviderRating
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{byID: make(map[string]*models.ProviderRating)}
}

func (r *RatingRepository) Get(ctx context.Context, providerID string) (*models.ProviderRating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rating, ok := r.byID[providerID]; ok {
		return cloneRating(rating), nil
	}
	return nil, utils.NotFound("provider rating", providerID)
}

// Upsert replaces every derived field but keeps the first CreatedDate.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.ProviderRating) error {
	if rating == nil || rating.ProviderID == "" {
		return utils.Validation("provider id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneRating(rating)
	if existing, ok := r.byID[rating.ProviderID]; ok && !existing.CreatedDate.IsZero() {
		stored.CreatedDate = existing.CreatedDate
	}
	r.byID[rating.ProviderID] = stored
	return nil
}

func cloneRating(r *models.ProviderRating) *models.ProviderRating {
	c := *r
	c.Badges = append([]string{}, r.Badges...)
	return &c
}
