package reviewRepo

import (
	"context"
	"time"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, review)
	return database.ConflictOr("insert review", "review already exists for this tour", err)
}

func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		return nil, database.NotFoundOr("find review", "review", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) GetByTourAndTourist(ctx context.Context, tourID, touristID string) (*models.Review, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var review models.Review
	filter := bson.M{"custom_tour_id": tourID, "tourist_id": touristID}
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		return nil, database.NotFoundOr("find review by tour", "review for tour", tourID, err)
	}
	return &review, nil
}

// updateAndFetch applies update to the review and decodes the post-update document.
func (r *MongoReviewRepo) updateAndFetch(ctx context.Context, op, id string, update bson.M) (*models.Review, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&review); err != nil {
		return nil, database.NotFoundOr(op, "review", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) UpdateModeration(ctx context.Context, id string, status models.ReviewStatus, notes, moderatorID string, at time.Time) (*models.Review, error) {
	update := bson.M{"$set": bson.M{
		"status":           status,
		"moderation_notes": notes,
		"moderated_by":     moderatorID,
		"moderated_at":     at,
		"updated_date":     at,
	}}
	return r.updateAndFetch(ctx, "moderate review", id, update)
}

func (r *MongoReviewRepo) SetProviderResponse(ctx context.Context, id string, response models.ProviderResponse) (*models.Review, error) {
	update := bson.M{"$set": bson.M{
		"provider_response": response,
		"updated_date":      response.RespondedAt,
	}}
	return r.updateAndFetch(ctx, "respond to review", id, update)
}

func (r *MongoReviewRepo) SetVoteCounts(ctx context.Context, id string, tally models.VoteTally) error {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"helpful_votes":     tally.Helpful,
		"not_helpful_votes": tally.NotHelpful,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.Persistence("update review votes", err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound("review", id)
	}
	return nil
}
