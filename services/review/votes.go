package review

import (
	"context"

	"tourhub/models"
	"tourhub/utils"

	"go.uber.org/zap"
)

const maxVoteRecounts = 5

// VoteHelpful records the voter's verdict on an approved review and resets
// the review's counters from a full recount, so repeat votes only move the
// voter's own entry.
func (s *DefaultReviewService) VoteHelpful(ctx context.Context, reviewID, voterID string, helpful bool) (*models.Review, error) {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Status != models.ReviewApproved {
		return nil, utils.Precondition("Only approved reviews can be voted on")
	}
	if review.TouristID == voterID {
		return nil, utils.Forbidden("You cannot vote on your own review")
	}

	vote := models.ReviewVote{
		ReviewID:  reviewID,
		VoterID:   voterID,
		Helpful:   helpful,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.votes.Upsert(ctx, vote); err != nil {
		return nil, err
	}
	tally, err := s.syncVoteCounts(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review.HelpfulVotes = tally.Helpful
	review.NotHelpfulVotes = tally.NotHelpful
	return review, nil
}

// syncVoteCounts writes a recount to the review and repeats until a
// recount taken after the write matches it. Concurrent voters may write
// out of order, but the last write is always confirmed against every vote
// stored before it.
func (s *DefaultReviewService) syncVoteCounts(ctx context.Context, reviewID string) (models.VoteTally, error) {
	tally, err := s.votes.Tally(ctx, reviewID)
	if err != nil {
		return tally, err
	}
	for i := 0; i < maxVoteRecounts; i++ {
		if err := s.reviews.SetVoteCounts(ctx, reviewID, tally); err != nil {
			return tally, err
		}
		recount, err := s.votes.Tally(ctx, reviewID)
		if err != nil {
			return tally, err
		}
		if recount == tally {
			return tally, nil
		}
		tally = recount
	}
	s.logger.Warn("Vote counts still changing after recounts",
		zap.String("reviewId", reviewID), zap.Int("attempts", maxVoteRecounts))
	return tally, s.reviews.SetVoteCounts(ctx, reviewID, tally)
}
