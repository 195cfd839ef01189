package memory

import (
	"context"
	"sync"

	"tourhub/models"
)

// VoteRepository keeps the latest vote per (review, voter).
type VoteRepository struct {
	mu    sync.Mutex
	votes map[string]map[string]bool
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{votes: make(map[string]map[string]bool)}
}

func (r *VoteRepository) Upsert(ctx context.Context, vote models.ReviewVote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byVoter, ok := r.votes[vote.ReviewID]
	if !ok {
		byVoter = make(map[string]bool)
		r.votes[vote.ReviewID] = byVoter
	}
	byVoter[vote.VoterID] = vote.Helpful
	return nil
}

func (r *VoteRepository) Tally(ctx context.Context, reviewID string) (models.VoteTally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tally models.VoteTally
	for _, helpful := range r.votes[reviewID] {
		if helpful {
			tally.Helpful++
		} else {
			tally.NotHelpful++
		}
	}
	return tally, nil
}
