package rating

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tourhub/database/repository"
	"tourhub/models"
	"tourhub/services/events"

	"go.uber.org/zap"
)

// RatingService owns the provider rating record: it is the only writer of
// provider_ratings and decides when a stored record is too old to serve.
type RatingService interface {
	// Recalculate rebuilds the provider's record from its approved reviews
	// and persists it.
	Recalculate(ctx context.Context, providerID string) (*models.ProviderRating, error)
	// GetOrRefresh returns the stored record, recalculating it first when it
	// is missing or older than maxAge.
	GetOrRefresh(ctx context.Context, providerID string, maxAge time.Duration) (*models.ProviderRating, error)
}

// Options carries the optional collaborators of the aggregator. Nil fields
// disable the matching feature.
type Options struct {
	Cache     RatingCache
	Publisher events.Publisher
	Metrics   *Metrics
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	strategy  Strategy
	ratings   repository.RatingRepository
	providers repository.ProviderRepository
	cache     RatingCache
	publisher events.Publisher
	metrics   *Metrics
	now       func() time.Time
	logger    *zap.Logger

	// unsynced holds providers whose cache entry may predate the store
	// because a write or delete failed. Reads bypass the cache for them
	// until a later write succeeds.
	unsynced sync.Map
}

func NewDefaultRatingService(
	strategy Strategy,
	ratings repository.RatingRepository,
	providers repository.ProviderRepository,
	logger *zap.Logger,
	opts Options,
) (*DefaultRatingService, error) {
	if strategy == nil || ratings == nil || providers == nil {
		return nil, fmt.Errorf("rating service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &DefaultRatingService{
		strategy:  strategy,
		ratings:   ratings,
		providers: providers,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		now:       now,
		logger:    logger,
	}, nil
}
