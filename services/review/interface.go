package review

import (
	"context"
	"fmt"
	"time"

	"tourhub/database/repository"
	"tourhub/models"
	"tourhub/services/events"
	"tourhub/services/notification"
	"tourhub/services/rating"

	"go.uber.org/zap"
)

// ReviewService drives a review through its lifecycle and keeps the
// provider rating in step with every change to the approved set.
type ReviewService interface {
	SubmitReview(ctx context.Context, in SubmitReviewInput) (*Result, error)
	ModerateReview(ctx context.Context, reviewID string, status models.ReviewStatus, notes, moderatorID string) (*Result, error)
	RespondToReview(ctx context.Context, reviewID, responseText, providerUserID string) (*models.Review, error)
	GetReview(ctx context.Context, reviewID string) (*models.Review, error)
	ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, models.Pagination, error)
	VoteHelpful(ctx context.Context, reviewID, voterID string, helpful bool) (*models.Review, error)
}

// SubmitReviewInput is what a tourist supplies when reviewing a tour.
type SubmitReviewInput struct {
	TourID         string `json:"custom_tour_id" validate:"required"`
	RegistrationID string `json:"registration_id" validate:"required"`
	TouristID      string `json:"tourist_id" validate:"required"`

	OverallRating       int  `json:"overall_rating" validate:"gte=1,lte=5"`
	OrganizationRating  *int `json:"organization_rating" validate:"omitempty,gte=1,lte=5"`
	CommunicationRating *int `json:"communication_rating" validate:"omitempty,gte=1,lte=5"`
	ValueRating         *int `json:"value_rating" validate:"omitempty,gte=1,lte=5"`
	ExperienceRating    *int `json:"experience_rating" validate:"omitempty,gte=1,lte=5"`

	Title      string   `json:"title" validate:"max=100"`
	ReviewText string   `json:"review_text" validate:"max=2000"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
}

// Result is a committed review plus an optional warning. Warning is set
// when the review was saved but the provider rating could not be
// recalculated; the rating catches up on its next stale read.
type Result struct {
	Review  *models.Review
	Warning string
}

const ratingWarning = "Review saved, but the provider rating could not be updated yet"

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	reviews       repository.ReviewRepository
	votes         repository.VoteRepository
	registrations repository.RegistrationRepository
	tours         repository.TourRepository
	users         repository.UserRepository
	providers     repository.ProviderRepository

	ratings   rating.RatingService
	notifier  notification.NotificationService
	publisher events.Publisher
	metrics   *rating.Metrics

	now    func() time.Time
	logger *zap.Logger
}

// Options carries the optional collaborators of the review service.
type Options struct {
	Notifier  notification.NotificationService
	Publisher events.Publisher
	Metrics   *rating.Metrics
	Now       func() time.Time
}

func NewDefaultReviewService(
	repos *repository.Repositories,
	ratings rating.RatingService,
	logger *zap.Logger,
	opts Options,
) (*DefaultReviewService, error) {
	if repos == nil || repos.Reviews == nil || repos.Votes == nil || repos.Registrations == nil ||
		repos.Tours == nil || repos.Users == nil || repos.Providers == nil || ratings == nil {
		return nil, fmt.Errorf("review service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &DefaultReviewService{
		reviews:       repos.Reviews,
		votes:         repos.Votes,
		registrations: repos.Registrations,
		tours:         repos.Tours,
		users:         repos.Users,
		providers:     repos.Providers,
		ratings:       ratings,
		notifier:      opts.Notifier,
		publisher:     opts.Publisher,
		metrics:       opts.Metrics,
		now:           opts.Now,
		logger:        logger,
	}
	if svc.notifier == nil {
		svc.notifier = notification.NoopNotificationService{}
	}
	if svc.publisher == nil {
		svc.publisher = events.NoopPublisher{}
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}
