package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tourhub/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RatingCache is a read-through copy of provider ratings. It is never
// authoritative; misses and failures fall back to the store.
type RatingCache interface {
	Get(ctx context.Context, providerID string) (*models.ProviderRating, bool)
	Set(ctx context.Context, rating *models.ProviderRating) error
	Delete(ctx context.Context, providerID string) error
}

type RedisRatingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisRatingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRatingCache {
	return &RedisRatingCache{client: client, ttl: ttl, logger: logger}
}

const cacheKeyPrefix = "rating:provider:"

func ratingKey(providerID string) string {
	return fmt.Sprintf("%s%s", cacheKeyPrefix, providerID)
}

func (c *RedisRatingCache) Get(ctx context.Context, providerID string) (*models.ProviderRating, bool) {
	val, err := c.client.Get(ctx, ratingKey(providerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("rating cache read failed", zap.String("providerId", providerID), zap.Error(err))
		}
		return nil, false
	}
	var rating models.ProviderRating
	if err := json.Unmarshal(val, &rating); err != nil {
		c.logger.Warn("corrupt rating cache entry", zap.String("providerId", providerID), zap.Error(err))
		return nil, false
	}
	return &rating, true
}

func (c *RedisRatingCache) Set(ctx context.Context, rating *models.ProviderRating) error {
	data, err := json.Marshal(rating)
	if err != nil {
		return fmt.Errorf("encode rating for cache: %w", err)
	}
	if err := c.client.Set(ctx, ratingKey(rating.ProviderID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write rating cache: %w", err)
	}
	return nil
}

func (c *RedisRatingCache) Delete(ctx context.Context, providerID string) error {
	if err := c.client.Del(ctx, ratingKey(providerID)).Err(); err != nil {
		return fmt.Errorf("delete rating cache entry: %w", err)
	}
	return nil
}
