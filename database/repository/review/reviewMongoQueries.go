package reviewRepo

import (
	"context"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listFilter builds the Mongo filter for a ReviewFilter. An empty status
// matches every status.
func listFilter(f models.ReviewFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.TourID != "" {
		filter["custom_tour_id"] = f.TourID
	}
	if f.ProviderID != "" {
		filter["provider_id"] = f.ProviderID
	}
	return filter
}

func (r *MongoReviewRepo) List(ctx context.Context, f models.ReviewFilter) ([]models.Review, int64, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.ScanRepoTimeout)
	defer cancel()

	filter := listFilter(f)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_date", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, utils.Persistence("list reviews", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, utils.Persistence("decode reviews", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, utils.Persistence("count reviews", err)
	}
	return reviews, total, nil
}

func (r *MongoReviewRepo) ListApprovedByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.ScanRepoTimeout)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "status": models.ReviewApproved}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, utils.Persistence("load approved reviews", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, utils.Persistence("decode approved reviews", err)
	}
	return reviews, nil
}
