package voteRepo

import (
	"context"

	"tourhub/models"
)

// VoteRepository persists one helpfulness vote per (review, voter).
type VoteRepository interface {
	// Upsert records the voter's current verdict, replacing any earlier one.
	Upsert(ctx context.Context, vote models.ReviewVote) error
	// Tally recounts every vote cast on a review.
	Tally(ctx context.Context, reviewID string) (models.VoteTally, error)
}
