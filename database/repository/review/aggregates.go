package reviewRepo

import (
	"context"
	"time"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// approvedSummaryDoc mirrors the $group stage output. Averages are pointers
// because $avg yields null when no document supplies the field.
type approvedSummaryDoc struct {
	Total            int      `bson:"total"`
	AvgOverall       *float64 `bson:"avg_overall"`
	AvgOrganization  *float64 `bson:"avg_organization"`
	AvgCommunication *float64 `bson:"avg_communication"`
	AvgValue         *float64 `bson:"avg_value"`
	AvgExperience    *float64 `bson:"avg_experience"`
	Five             int      `bson:"five"`
	Four             int      `bson:"four"`
	Three            int      `bson:"three"`
	Two              int      `bson:"two"`
	One              int      `bson:"one"`
	Recent           int      `bson:"recent"`
	RecentAvg        *float64 `bson:"recent_avg"`
}

func starBucket(stars int) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$overall_rating", stars}}, 1, 0}}}
}

// summaryPipeline groups a provider's approved reviews into one document.
// $avg skips missing and null fields, which is exactly the "only reviews
// that supply it" rule for sub-ratings.
func summaryPipeline(providerID string, recentSince time.Time) mongo.Pipeline {
	isRecent := bson.M{"$gte": bson.A{"$created_date", recentSince}}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"provider_id": providerID, "status": models.ReviewApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":               nil,
			"total":             bson.M{"$sum": 1},
			"avg_overall":       bson.M{"$avg": "$overall_rating"},
			"avg_organization":  bson.M{"$avg": "$organization_rating"},
			"avg_communication": bson.M{"$avg": "$communication_rating"},
			"avg_value":         bson.M{"$avg": "$value_rating"},
			"avg_experience":    bson.M{"$avg": "$experience_rating"},
			"five":              starBucket(5),
			"four":              starBucket(4),
			"three":             starBucket(3),
			"two":               starBucket(2),
			"one":               starBucket(1),
			"recent":            bson.M{"$sum": bson.M{"$cond": bson.A{isRecent, 1, 0}}},
			"recent_avg":        bson.M{"$avg": bson.M{"$cond": bson.A{isRecent, "$overall_rating", nil}}},
		}}},
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func (r *MongoReviewRepo) SummarizeApproved(ctx context.Context, providerID string, recentSince time.Time) (*models.RatingSummary, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.ScanRepoTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, summaryPipeline(providerID, recentSince))
	if err != nil {
		return nil, utils.Persistence("aggregate approved reviews", err)
	}
	defer cursor.Close(ctx)

	summary := &models.RatingSummary{SubAverages: map[models.SubRating]float64{}}
	if cursor.Next(ctx) {
		var doc approvedSummaryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, utils.Persistence("decode rating summary", err)
		}
		summary.TotalReviews = doc.Total
		summary.AverageRating = deref(doc.AvgOverall)
		summary.SubAverages[models.SubRatingOrganization] = deref(doc.AvgOrganization)
		summary.SubAverages[models.SubRatingCommunication] = deref(doc.AvgCommunication)
		summary.SubAverages[models.SubRatingValue] = deref(doc.AvgValue)
		summary.SubAverages[models.SubRatingExperience] = deref(doc.AvgExperience)
		summary.Distribution = models.RatingDistribution{
			FiveStar:  doc.Five,
			FourStar:  doc.Four,
			ThreeStar: doc.Three,
			TwoStar:   doc.Two,
			OneStar:   doc.One,
		}
		summary.RecentReviews = doc.Recent
		summary.RecentAverageRating = deref(doc.RecentAvg)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.Persistence("iterate rating summary", err)
	}
	return summary, nil
}
