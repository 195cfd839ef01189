package providerRepo

import (
	"context"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo(db *mongo.Database) *MongoProviderRepo {
	return &MongoProviderRepo{coll: db.Collection(database.ProvidersCollection)}
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	// Public access: only the fields that get denormalized elsewhere.
	projection := bson.M{
		"id":            1,
		"provider_name": 1,
		"country":       1,
	}
	var provider models.Provider
	opts := options.FindOne().SetProjection(projection)
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&provider); err != nil {
		return nil, database.NotFoundOr("find provider", "provider", id, err)
	}
	return &provider, nil
}
