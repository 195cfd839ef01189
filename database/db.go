package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the repositories.
const (
	ReviewsCollection         = "tour_reviews"
	ProviderRatingsCollection = "provider_ratings"
	ReviewVotesCollection     = "review_votes"
	RegistrationsCollection   = "registrations"
	ToursCollection           = "custom_tours"
	UsersCollection           = "users"
	ProvidersCollection       = "providers"
)

// Connect opens and pings a MongoDB client. The caller owns the client and
// must Disconnect it on shutdown.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}
