package voteRepo

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

// MongoVoteRepo persists review votes per voter.
type MongoVoteRepo struct {
	coll *mongo.Collection
}

func NewMongoVoteRepo(db *mongo.Database) *MongoVoteRepo {
	return &MongoVoteRepo{coll: db.Collection(database.ReviewVotesCollection)}
}

func (r *MongoVoteRepo) Upsert(ctx context.Context, vote models.ReviewVote) error {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := bson.M{"review_id": vote.ReviewID, "voter_id": vote.VoterID}
	update := bson.M{"$set": bson.M{
		"helpful":    vote.Helpful,
		"updated_at": vote.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return utils.Persistence("upsert review vote", err)
	}
	return nil
}

func (r *MongoVoteRepo) Tally(ctx context.Context, reviewID string) (models.VoteTally, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"review_id": reviewID}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"helpful":     bson.M{"$sum": bson.M{"$cond": bson.A{"$helpful", 1, 0}}},
			"not_helpful": bson.M{"$sum": bson.M{"$cond": bson.A{"$helpful", 0, 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.VoteTally{}, utils.Persistence("tally review votes", err)
	}
	defer cursor.Close(ctx)

	var tally models.VoteTally
	if cursor.Next(ctx) {
		if err := cursor.Decode(&tally); err != nil {
			return models.VoteTally{}, utils.Persistence("decode vote tally", err)
		}
	}
	return tally, cursor.Err()
}

// EnsureIndexes enforces one vote per voter per review.
func (r *MongoVoteRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, utils.ScanRepoTimeout)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "review_id", Value: 1}, {Key: "voter_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create review vote index: %w", err)
	}
	return nil
}
