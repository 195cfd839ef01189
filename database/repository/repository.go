package repository

import (
	"context"
	"fmt"

	"tourhub/database/repository/memory"
	providerRepo "tourhub/database/repository/provider"
	ratingRepo "tourhub/database/repository/rating"
	reviewRepo "tourhub/database/repository/review"
	tourRepo "tourhub/database/repository/tour"
	userRepo "tourhub/database/repository/user"
	voteRepo "tourhub/database/repository/vote"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	ReviewRepository       = reviewRepo.ReviewRepository
	RatingRepository       = ratingRepo.RatingRepository
	VoteRepository         = voteRepo.VoteRepository
	TourRepository         = tourRepo.TourRepository
	RegistrationRepository = tourRepo.RegistrationRepository
	UserRepository         = userRepo.UserRepository
	ProviderRepository     = providerRepo.ProviderRepository
)

// Re-export the Mongo constructors.
var (
	NewMongoReviewRepo       = reviewRepo.NewMongoReviewRepo
	NewMongoRatingRepo       = ratingRepo.NewMongoRatingRepo
	NewMongoVoteRepo         = voteRepo.NewMongoVoteRepo
	NewMongoTourRepo         = tourRepo.NewMongoTourRepo
	NewMongoRegistrationRepo = tourRepo.NewMongoRegistrationRepo
	NewMongoUserRepo         = userRepo.NewMongoUserRepo
	NewMongoProviderRepo     = providerRepo.NewMongoProviderRepo
)

// Repositories bundles every store the review services depend on.
type Repositories struct {
	Reviews       ReviewRepository
	Ratings       RatingRepository
	Votes         VoteRepository
	Tours         TourRepository
	Registrations RegistrationRepository
	Users         UserRepository
	Providers     ProviderRepository

	indexers []indexer
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// NewMongoRepositories wires every repository to db.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	reviews := NewMongoReviewRepo(db)
	ratings := NewMongoRatingRepo(db)
	votes := NewMongoVoteRepo(db)
	return &Repositories{
		Reviews:       reviews,
		Ratings:       ratings,
		Votes:         votes,
		Tours:         NewMongoTourRepo(db),
		Registrations: NewMongoRegistrationRepo(db),
		Users:         NewMongoUserRepo(db),
		Providers:     NewMongoProviderRepo(db),
		indexers:      []indexer{reviews, ratings, votes},
	}
}

// NewMemoryRepositories backs every repository with process memory. dir
// supplies the users, providers, tours and registrations.
func NewMemoryRepositories(dir *memory.Directory) *Repositories {
	return &Repositories{
		Reviews:       memory.NewReviewRepository(),
		Ratings:       memory.NewRatingRepository(),
		Votes:         memory.NewVoteRepository(),
		Tours:         dir.Tours(),
		Registrations: dir.Registrations(),
		Users:         dir.Users(),
		Providers:     dir.Providers(),
	}
}

// EnsureIndexes creates the indexes owned by this service. It is a no-op
// for memory repositories.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ix := range r.indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}
