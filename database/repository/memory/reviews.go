package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tourhub/models"
	"tourhub/utils"
)

// ReviewRepository stores reviews in memory. Not suitable for production.
type ReviewRepository struct {
	mu        sync.RWMutex
	byID      map[string]*models.Review
	byTourist map[string]string
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		byID:      make(map[string]*models.Review),
		byTourist: make(map[string]string),
	}
}

func tourTouristKey(tourID, touristID string) string {
	return tourID + "|" + touristID
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review == nil || review.ID == "" {
		return utils.Validation("review id is required")
	}
	key := tourTouristKey(review.CustomTourID, review.TouristID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTourist[key]; ok {
		return utils.Conflict("You have already reviewed this tour")
	}
	if _, ok := r.byID[review.ID]; ok {
		return utils.Conflict("review already exists")
	}
	r.byID[review.ID] = cloneReview(review)
	r.byTourist[key] = review.ID
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if review, ok := r.byID[id]; ok {
		return cloneReview(review), nil
	}
	return nil, utils.NotFound("review", id)
}

func (r *ReviewRepository) GetByTourAndTourist(ctx context.Context, tourID, touristID string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byTourist[tourTouristKey(tourID, touristID)]; ok {
		return cloneReview(r.byID[id]), nil
	}
	return nil, utils.NotFound("review", tourID+"/"+touristID)
}

func (r *ReviewRepository) List(ctx context.Context, f models.ReviewFilter) ([]models.Review, int64, error) {
	r.mu.RLock()
	matched := make([]models.Review, 0)
	for _, review := range r.byID {
		if f.TourID != "" && review.CustomTourID != f.TourID {
			continue
		}
		if f.ProviderID != "" && review.ProviderID != f.ProviderID {
			continue
		}
		if f.Status != "" && review.Status != f.Status {
			continue
		}
		matched = append(matched, *cloneReview(review))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedDate.After(matched[j].CreatedDate)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start < 0 || start >= len(matched) {
		return []models.Review{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *ReviewRepository) ListApprovedByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Review, 0)
	for _, review := range r.byID {
		if review.ProviderID == providerID && review.Status == models.ReviewApproved {
			out = append(out, *cloneReview(review))
		}
	}
	return out, nil
}

func (r *ReviewRepository) SummarizeApproved(ctx context.Context, providerID string, recentSince time.Time) (*models.RatingSummary, error) {
	reviews, err := r.ListApprovedByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	summary := models.SummarizeReviews(reviews, recentSince)
	return &summary, nil
}

func (r *ReviewRepository) UpdateModeration(ctx context.Context, id string, status models.ReviewStatus, notes, moderatorID string, at time.Time) (*models.Review, error) {
	return r.mutate(id, func(review *models.Review) {
		moderatedAt := at
		review.Status = status
		review.ModerationNotes = notes
		review.ModeratedBy = moderatorID
		review.ModeratedAt = &moderatedAt
		review.UpdatedDate = at
	})
}

func (r *ReviewRepository) SetProviderResponse(ctx context.Context, id string, response models.ProviderResponse) (*models.Review, error) {
	return r.mutate(id, func(review *models.Review) {
		resp := response
		review.ProviderResponse = &resp
		review.UpdatedDate = response.RespondedAt
	})
}

func (r *ReviewRepository) SetVoteCounts(ctx context.Context, id string, tally models.VoteTally) error {
	_, err := r.mutate(id, func(review *models.Review) {
		review.HelpfulVotes = tally.Helpful
		review.NotHelpfulVotes = tally.NotHelpful
	})
	return err
}

func (r *ReviewRepository) mutate(id string, fn func(*models.Review)) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.byID[id]
	if !ok {
		return nil, utils.NotFound("review", id)
	}
	fn(review)
	return cloneReview(review), nil
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneReview(r *models.Review) *models.Review {
	if r == nil {
		return nil
	}
	c := *r
	c.OrganizationRating = cloneInt(r.OrganizationRating)
	c.CommunicationRating = cloneInt(r.CommunicationRating)
	c.ValueRating = cloneInt(r.ValueRating)
	c.ExperienceRating = cloneInt(r.ExperienceRating)
	c.Pros = append([]string(nil), r.Pros...)
	c.Cons = append([]string(nil), r.Cons...)
	if r.ModeratedAt != nil {
		at := *r.ModeratedAt
		c.ModeratedAt = &at
	}
	if r.ProviderResponse != nil {
		resp := *r.ProviderResponse
		c.ProviderResponse = &resp
	}
	return &c
}
