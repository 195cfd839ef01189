package rating

import (
	"context"
	"fmt"
	"time"

	"tourhub/database/repository"
	"tourhub/models"
)

// Strategy computes the raw summary of a provider's approved reviews.
type Strategy interface {
	Summarize(ctx context.Context, providerID string, recentSince time.Time) (*models.RatingSummary, error)
}

const (
	StrategyMemory   = "memory"
	StrategyPipeline = "pipeline"
)

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string, reviews repository.ReviewRepository) (Strategy, error) {
	switch name {
	case "", StrategyMemory:
		return &MemoryStrategy{reviews: reviews}, nil
	case StrategyPipeline:
		return &PipelineStrategy{reviews: reviews}, nil
	default:
		return nil, fmt.Errorf("unknown rating strategy %q", name)
	}
}

// MemoryStrategy loads every approved review and folds them in process.
type MemoryStrategy struct {
	reviews repository.ReviewRepository
}

func (s *MemoryStrategy) Summarize(ctx context.Context, providerID string, recentSince time.Time) (*models.RatingSummary, error) {
	reviews, err := s.reviews.ListApprovedByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	summary := models.SummarizeReviews(reviews, recentSince)
	return &summary, nil
}

// PipelineStrategy delegates the fold to the store's grouped aggregation.
type PipelineStrategy struct {
	reviews repository.ReviewRepository
}

func (s *PipelineStrategy) Summarize(ctx context.Context, providerID string, recentSince time.Time) (*models.RatingSummary, error) {
	return s.reviews.SummarizeApproved(ctx, providerID, recentSince)
}
