package rating

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tourhub/database/repository/memory"
	"tourhub/models"
	"tourhub/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc     *DefaultRatingService
	reviews *memory.ReviewRepository
	ratings *memory.RatingRepository
	dir     *memory.Directory
	metrics *Metrics
	now     time.Time
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFixture(t *testing.T, strategyName string) *fixture {
	t.Helper()
	f := &fixture{
		reviews: memory.NewReviewRepository(),
		ratings: memory.NewRatingRepository(),
		dir:     memory.NewDirectory(),
		metrics: NewMetrics(prometheus.NewRegistry()),
		now:     time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC),
	}
	f.dir.PutProvider(models.Provider{ID: "prov-1", ProviderName: "Lakeside Tours", Country: "KE"})

	strategy, err := NewStrategy(strategyName, f.reviews)
	require.NoError(t, err)
	svc, err := NewDefaultRatingService(strategy, f.ratings, f.dir.Providers(), zap.NewNop(), Options{
		Metrics: f.metrics,
		Now:     func() time.Time { return f.now },
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func intPtr(v int) *int { return &v }

var reviewSeq int

func (f *fixture) addReview(t *testing.T, status models.ReviewStatus, overall int, created time.Time, mutate ...func(*models.Review)) *models.Review {
	t.Helper()
	reviewSeq++
	r := &models.Review{
		ID:            fmt.Sprintf("rev-%d", reviewSeq),
		CustomTourID:  fmt.Sprintf("tour-%d", reviewSeq),
		TouristID:     "tourist-1",
		ProviderID:    "prov-1",
		OverallRating: overall,
		Status:        status,
		CreatedDate:   created,
	}
	for _, m := range mutate {
		m(r)
	}
	require.NoError(t, f.reviews.Create(context.Background(), r))
	return r
}

func TestRecalculate_NoReviewsYieldsZeroRecord(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	f.addReview(t, models.ReviewPending, 5, f.now)

	rating, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.Equal(t, 0, rating.TotalReviews)
	assert.Zero(t, rating.AverageRating)
	assert.Zero(t, rating.AverageOrganization)
	assert.Zero(t, rating.RecentAverageRating)
	assert.Equal(t, models.RatingDistribution{}, rating.RatingDistribution)
	assert.Empty(t, rating.Badges)
	assert.NotNil(t, rating.Badges)
	assert.Equal(t, f.now, rating.LastCalculated)
	assert.Equal(t, "Lakeside Tours", rating.ProviderName)
	assert.Equal(t, "KE", rating.ProviderCountry)
}

// The pipeline strategy here runs against the memory store, so this checks
// the strategy wiring only. The $group document itself is covered in
// database/repository/review.
func TestRecalculate_TourEndScenario(t *testing.T) {
	for _, name := range []string{StrategyMemory, StrategyPipeline} {
		t.Run(name+" strategy", func(t *testing.T) {
			f := newFixture(t, name)
			f.addReview(t, models.ReviewApproved, 5, f.now, func(r *models.Review) {
				r.OrganizationRating = intPtr(4)
			})

			rating, err := f.svc.Recalculate(context.Background(), "prov-1")
			require.NoError(t, err)
			assert.Equal(t, 1, rating.TotalReviews)
			assert.Equal(t, 5.0, rating.AverageRating)
			assert.Equal(t, 4.0, rating.AverageOrganization)
			assert.Equal(t, 1, rating.RatingDistribution.FiveStar)

			f.addReview(t, models.ReviewApproved, 3, f.now)
			rating, err = f.svc.Recalculate(context.Background(), "prov-1")
			require.NoError(t, err)
			assert.Equal(t, 2, rating.TotalReviews)
			assert.Equal(t, 4.0, rating.AverageRating)
			assert.Equal(t, 4.0, rating.AverageOrganization)
			assert.Equal(t, models.RatingDistribution{FiveStar: 1, ThreeStar: 1}, rating.RatingDistribution)
		})
	}
}

func TestRecalculate_SubRatingsAverageOnlyPopulatedReviews(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	f.addReview(t, models.ReviewApproved, 4, f.now, func(r *models.Review) {
		r.CommunicationRating = intPtr(5)
		r.ValueRating = intPtr(2)
	})
	f.addReview(t, models.ReviewApproved, 2, f.now, func(r *models.Review) {
		r.CommunicationRating = intPtr(4)
	})
	f.addReview(t, models.ReviewApproved, 3, f.now)

	rating, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.Equal(t, 3.0, rating.AverageRating)
	assert.Equal(t, 4.5, rating.AverageCommunication)
	assert.Equal(t, 2.0, rating.AverageValue)
	assert.Zero(t, rating.AverageExperience)
	assert.Zero(t, rating.AverageOrganization)
}

func TestRecalculate_DistributionSumsToTotal(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	for _, stars := range []int{1, 2, 2, 3, 4, 5, 5, 5} {
		f.addReview(t, models.ReviewApproved, stars, f.now)
	}
	f.addReview(t, models.ReviewRejected, 1, f.now)
	f.addReview(t, models.ReviewFlagged, 1, f.now)

	rating, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.Equal(t, 8, rating.TotalReviews)
	assert.Equal(t, rating.TotalReviews, rating.RatingDistribution.Total())
	assert.Equal(t, models.RatingDistribution{FiveStar: 3, FourStar: 1, ThreeStar: 1, TwoStar: 2, OneStar: 1}, rating.RatingDistribution)
}

func TestRecalculate_RecentWindow(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	f.addReview(t, models.ReviewApproved, 5, f.now.Add(-31*24*time.Hour))
	f.addReview(t, models.ReviewApproved, 4, f.now.Add(-29*24*time.Hour))
	f.addReview(t, models.ReviewApproved, 2, f.now.Add(-time.Hour))

	rating, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.Equal(t, 3, rating.TotalReviews)
	assert.Equal(t, 2, rating.RecentReviews)
	assert.Equal(t, 3.0, rating.RecentAverageRating)
}

func TestRecalculate_IdempotentExceptTimestamp(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	for _, stars := range []int{5, 5, 4, 5, 5} {
		f.addReview(t, models.ReviewApproved, stars, f.now, func(r *models.Review) {
			r.ExperienceRating = intPtr(5)
		})
	}

	first, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)
	f.advance(time.Minute)
	second, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.True(t, second.LastCalculated.After(first.LastCalculated))
	assert.Equal(t, first.CreatedDate, second.CreatedDate)

	first.LastCalculated, second.LastCalculated = time.Time{}, time.Time{}
	first.UpdatedDate, second.UpdatedDate = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
	assert.Equal(t, []string{models.BadgeTopRated, models.BadgeOutstandingExperience}, second.Badges)
}

func TestRecalculate_ModerationMovesTotalByOne(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	f.addReview(t, models.ReviewApproved, 4, f.now)
	pending := f.addReview(t, models.ReviewPending, 2, f.now)

	before, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	_, err = f.reviews.UpdateModeration(context.Background(), pending.ID, models.ReviewApproved, "", "admin-1", f.now)
	require.NoError(t, err)
	approved, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Equal(t, before.TotalReviews+1, approved.TotalReviews)

	_, err = f.reviews.UpdateModeration(context.Background(), pending.ID, models.ReviewRejected, "spam", "admin-1", f.now)
	require.NoError(t, err)
	rejected, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Equal(t, approved.TotalReviews-1, rejected.TotalReviews)
}

func TestRecalculate_AllApprovedRemovedResetsToZero(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	r := f.addReview(t, models.ReviewApproved, 5, f.now, func(r *models.Review) {
		r.ValueRating = intPtr(5)
	})
	_, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	_, err = f.reviews.UpdateModeration(context.Background(), r.ID, models.ReviewFlagged, "", "admin-1", f.now)
	require.NoError(t, err)
	rating, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.Zero(t, rating.TotalReviews)
	assert.Zero(t, rating.AverageValue)
	assert.Empty(t, rating.Badges)
}

func TestRecalculate_MetricsRecorded(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	_, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.recalculations.WithLabelValues(TriggerMutation, "success")))
}

type failingStrategy struct{}

func (failingStrategy) Summarize(context.Context, string, time.Time) (*models.RatingSummary, error) {
	return nil, utils.Persistence("aggregate approved reviews", errors.New("connection reset"))
}

func TestRecalculate_StrategyFailureIsReturned(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	f.svc.strategy = failingStrategy{}

	_, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrPersistence)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.recalculations.WithLabelValues(TriggerMutation, "error")))

	_, err = f.ratings.Get(context.Background(), "prov-1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRecalculate_ProviderLookupFailureKeepsStoredName(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	_, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)

	f.svc.providers = memory.NewDirectory().Providers()
	rating, err := f.svc.Recalculate(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Tours", rating.ProviderName)
}

func TestGetOrRefresh_CreatesMissingRecord(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	f.addReview(t, models.ReviewApproved, 4, f.now)

	rating, err := f.svc.GetOrRefresh(context.Background(), "prov-1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, rating.TotalReviews)

	stored, err := f.ratings.Get(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Equal(t, f.now, stored.LastCalculated)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.recalculations.WithLabelValues(TriggerMissing, "success")))
}

func TestGetOrRefresh_FreshRecordServedAsIs(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	_, err := f.svc.GetOrRefresh(context.Background(), "prov-1", time.Hour)
	require.NoError(t, err)

	// A review approved without a recompute stays invisible until stale.
	f.addReview(t, models.ReviewApproved, 5, f.now)
	f.advance(30 * time.Minute)

	rating, err := f.svc.GetOrRefresh(context.Background(), "prov-1", time.Hour)
	require.NoError(t, err)
	assert.Zero(t, rating.TotalReviews)
	assert.Zero(t, testutil.ToFloat64(f.metrics.staleRefresh))
}

func TestGetOrRefresh_StaleRecordRecalculated(t *testing.T) {
	f := newFixture(t, StrategyMemory)
	_, err := f.svc.GetOrRefresh(context.Background(), "prov-1", time.Hour)
	require.NoError(t, err)

	f.addReview(t, models.ReviewApproved, 5, f.now)
	f.advance(61 * time.Minute)

	rating, err := f.svc.GetOrRefresh(context.Background(), "prov-1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, rating.TotalReviews)
	assert.Equal(t, f.now, rating.LastCalculated)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.staleRefresh))
}

func TestNewStrategy_Unknown(t *testing.T) {
	_, err := NewStrategy("sql", memory.NewReviewRepository())
	require.Error(t, err)
}

func TestNewDefaultRatingService_RequiresDependencies(t *testing.T) {
	_, err := NewDefaultRatingService(nil, memory.NewRatingRepository(), memory.NewDirectory().Providers(), nil, Options{})
	require.Error(t, err)
}
