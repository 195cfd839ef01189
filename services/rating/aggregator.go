package rating

import (
	"context"
	"errors"
	"time"

	"tourhub/models"
	"tourhub/services/events"
	"tourhub/utils"

	"go.uber.org/zap"
)

func (s *DefaultRatingService) Recalculate(ctx context.Context, providerID string) (*models.ProviderRating, error) {
	return s.recalculate(ctx, providerID, TriggerMutation)
}

func (s *DefaultRatingService) recalculate(ctx context.Context, providerID, trigger string) (rating *models.ProviderRating, err error) {
	started := time.Now()
	defer func() { s.metrics.observeRecalculation(trigger, started, err) }()

	now := s.now().UTC()
	summary, err := s.strategy.Summarize(ctx, providerID, now.Add(-models.RecentWindow))
	if err != nil {
		s.logger.Error("Failed to summarize approved reviews",
			zap.String("providerId", providerID), zap.Error(err))
		return nil, err
	}

	rating = buildRating(providerID, summary)
	rating.LastCalculated = now
	rating.UpdatedDate = now
	rating.CreatedDate = now
	s.attachProvider(ctx, rating)

	s.invalidateCache(ctx, providerID)
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		s.logger.Error("Failed to persist provider rating",
			zap.String("providerId", providerID), zap.Error(err))
		return nil, err
	}

	// CreatedDate is only written on first insert; re-read it so callers
	// see the stored value.
	if stored, getErr := s.ratings.Get(ctx, providerID); getErr == nil {
		rating.CreatedDate = stored.CreatedDate
	}

	s.writeCache(ctx, rating)
	events.Emit(ctx, s.publisher, s.logger, events.TypeRatingRecalculated, providerID, rating)

	s.logger.Debug("Provider rating recalculated",
		zap.String("providerId", providerID),
		zap.String("trigger", trigger),
		zap.Int("totalReviews", rating.TotalReviews),
		zap.Float64("averageRating", rating.AverageRating))
	return rating, nil
}

// buildRating turns a summary into a record. An empty summary always yields
// the all-zero record regardless of what the strategy returned.
func buildRating(providerID string, summary *models.RatingSummary) *models.ProviderRating {
	rating := models.NewProviderRating(providerID)
	if summary == nil || summary.TotalReviews == 0 {
		return rating
	}
	rating.TotalReviews = summary.TotalReviews
	rating.AverageRating = summary.AverageRating
	rating.RatingDistribution = summary.Distribution
	for _, k := range models.SubRatings {
		rating.SetSubAverage(k, summary.SubAverages[k])
	}
	rating.RecentReviews = summary.RecentReviews
	rating.RecentAverageRating = summary.RecentAverageRating
	rating.Badges = Badges(summary)
	return rating
}

// attachProvider copies the provider's current name and country onto the
// record. A failed lookup keeps whatever the stored record already had.
func (s *DefaultRatingService) attachProvider(ctx context.Context, rating *models.ProviderRating) {
	provider, err := s.providers.GetByID(ctx, rating.ProviderID)
	if err == nil {
		rating.ProviderName = provider.ProviderName
		rating.ProviderCountry = provider.Country
		return
	}
	if !errors.Is(err, utils.ErrNotFound) {
		s.logger.Warn("Provider lookup failed during rating recalculation",
			zap.String("providerId", rating.ProviderID), zap.Error(err))
	}
	if existing, getErr := s.ratings.Get(ctx, rating.ProviderID); getErr == nil {
		rating.ProviderName = existing.ProviderName
		rating.ProviderCountry = existing.ProviderCountry
	}
}

func (s *DefaultRatingService) GetOrRefresh(ctx context.Context, providerID string, maxAge time.Duration) (*models.ProviderRating, error) {
	now := s.now().UTC()

	if s.cacheUsable(providerID) {
		if cached, ok := s.cache.Get(ctx, providerID); ok && !cached.IsStale(now, maxAge) {
			return cached, nil
		}
	}

	stored, err := s.ratings.Get(ctx, providerID)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return s.recalculate(ctx, providerID, TriggerMissing)
	case err != nil:
		return nil, err
	case stored.IsStale(now, maxAge):
		s.metrics.staleRead()
		return s.recalculate(ctx, providerID, TriggerStale)
	}

	s.writeCache(ctx, stored)
	return stored, nil
}

func (s *DefaultRatingService) cacheUsable(providerID string) bool {
	if s.cache == nil {
		return false
	}
	_, pending := s.unsynced.Load(providerID)
	return !pending
}

// invalidateCache drops the cached copy before the store changes so a
// failed write afterwards can only cause a miss.
func (s *DefaultRatingService) invalidateCache(ctx context.Context, providerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, providerID); err != nil {
		s.unsynced.Store(providerID, struct{}{})
		s.logger.Warn("Failed to invalidate cached provider rating",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

// writeCache stores rating in the cache. On failure the entry is deleted,
// and if that fails too the provider is read from the store until a later
// write succeeds.
func (s *DefaultRatingService) writeCache(ctx context.Context, rating *models.ProviderRating) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, rating)
	if err == nil {
		s.unsynced.Delete(rating.ProviderID)
		return
	}
	s.logger.Warn("Failed to cache provider rating",
		zap.String("providerId", rating.ProviderID), zap.Error(err))
	if delErr := s.cache.Delete(ctx, rating.ProviderID); delErr != nil {
		s.unsynced.Store(rating.ProviderID, struct{}{})
		s.logger.Warn("Failed to invalidate cached provider rating",
			zap.String("providerId", rating.ProviderID), zap.Error(delErr))
		return
	}
	s.unsynced.Delete(rating.ProviderID)
}
