package reviewRepo

import (
	"context"
	"fmt"

	"tourhub/database"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo(db *mongo.Database) *MongoReviewRepo {
	return &MongoReviewRepo{coll: db.Collection(database.ReviewsCollection)}
}

// EnsureIndexes creates the unique (tour, tourist) index and the indexes
// used by listing and aggregation.
func (r *MongoReviewRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, utils.ScanRepoTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "custom_tour_id", Value: 1}, {Key: "tourist_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "overall_rating", Value: -1}}},
		{Keys: bson.D{{Key: "created_date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
