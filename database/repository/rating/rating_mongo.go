package ratingRepo

import (
	"context"
	"fmt"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo(db *mongo.Database) *MongoRatingRepo {
	return &MongoRatingRepo{coll: db.Collection(database.ProviderRatingsCollection)}
}

func (r *MongoRatingRepo) Get(ctx context.Context, providerID string) (*models.ProviderRating, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var rating models.ProviderRating
	if err := r.coll.FindOne(ctx, bson.M{"provider_id": providerID}).Decode(&rating); err != nil {
		return nil, database.NotFoundOr("find provider rating", "rating for provider", providerID, err)
	}
	if rating.Badges == nil {
		rating.Badges = []string{}
	}
	return &rating, nil
}

// derivedFields lists everything a recompute owns. created_date is left
// out so it survives across recomputes.
func derivedFields(rating *models.ProviderRating) bson.M {
	badges := rating.Badges
	if badges == nil {
		badges = []string{}
	}
	return bson.M{
		"provider_id":           rating.ProviderID,
		"provider_name":         rating.ProviderName,
		"provider_country":      rating.ProviderCountry,
		"total_reviews":         rating.TotalReviews,
		"average_rating":        rating.AverageRating,
		"rating_distribution":   rating.RatingDistribution,
		"average_organization":  rating.AverageOrganization,
		"average_communication": rating.AverageCommunication,
		"average_value":         rating.AverageValue,
		"average_experience":    rating.AverageExperience,
		"recent_reviews":        rating.RecentReviews,
		"recent_average_rating": rating.RecentAverageRating,
		"badges":                badges,
		"last_calculated":       rating.LastCalculated,
		"updated_date":          rating.UpdatedDate,
	}
}

func (r *MongoRatingRepo) Upsert(ctx context.Context, rating *models.ProviderRating) error {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	createdDate := rating.CreatedDate
	if createdDate.IsZero() {
		createdDate = rating.UpdatedDate
	}
	update := bson.M{
		"$set":         derivedFields(rating),
		"$setOnInsert": bson.M{"created_date": createdDate},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"provider_id": rating.ProviderID}, update, opts); err != nil {
		// Two first-time upserts can race on the unique index; the loser
		// retries once as a plain update of the now-existing document.
		if mongo.IsDuplicateKeyError(err) {
			if _, err = r.coll.UpdateOne(ctx, bson.M{"provider_id": rating.ProviderID}, update); err == nil {
				return nil
			}
		}
		return utils.Persistence("upsert provider rating", err)
	}
	return nil
}

// EnsureIndexes creates the unique provider index and the ranking indexes.
func (r *MongoRatingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, utils.ScanRepoTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "provider_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "average_rating", Value: -1}}},
		{Keys: bson.D{{Key: "total_reviews", Value: -1}}},
		{Keys: bson.D{{Key: "last_calculated", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create provider rating indexes: %w", err)
	}
	return nil
}
