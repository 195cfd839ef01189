// File: models/provider_rating.go
package models

import "time"

// Badges a provider can earn from its approved reviews.
const (
	BadgeTopRated               = "top_rated"
	BadgeExcellentCommunication = "excellent_communication"
	BadgeGreatValue             = "great_value"
	BadgeOutstandingExperience  = "outstanding_experience"
)

// RatingDistribution counts approved reviews per overall star value.
type RatingDistribution struct {
	FiveStar  int `bson:"five_star" json:"five_star"`
	FourStar  int `bson:"four_star" json:"four_star"`
	ThreeStar int `bson:"three_star" json:"three_star"`
	TwoStar   int `bson:"two_star" json:"two_star"`
	OneStar   int `bson:"one_star" json:"one_star"`
}

// Add counts one review with the given overall rating. Values outside
// 1..5 are ignored.
func (d *RatingDistribution) Add(stars int) {
	switch stars {
	case 5:
		d.FiveStar++
	case 4:
		d.FourStar++
	case 3:
		d.ThreeStar++
	case 2:
		d.TwoStar++
	case 1:
		d.OneStar++
	}
}

// Total is the sum of all buckets.
func (d RatingDistribution) Total() int {
	return d.FiveStar + d.FourStar + d.ThreeStar + d.TwoStar + d.OneStar
}

// ProviderRating is the materialized aggregate of one provider's approved
// reviews. Only the rating aggregator writes it.
type ProviderRating struct {
	ProviderID      string `bson:"provider_id" json:"provider_id"`
	ProviderName    string `bson:"provider_name,omitempty" json:"provider_name,omitempty"`
	ProviderCountry string `bson:"provider_country,omitempty" json:"provider_country,omitempty"`

	TotalReviews       int                `bson:"total_reviews" json:"total_reviews"`
	AverageRating      float64            `bson:"average_rating" json:"average_rating"`
	RatingDistribution RatingDistribution `bson:"rating_distribution" json:"rating_distribution"`

	AverageOrganization  float64 `bson:"average_organization" json:"average_organization"`
	AverageCommunication float64 `bson:"average_communication" json:"average_communication"`
	AverageValue         float64 `bson:"average_value" json:"average_value"`
	AverageExperience    float64 `bson:"average_experience" json:"average_experience"`

	RecentReviews       int     `bson:"recent_reviews" json:"recent_reviews"`
	RecentAverageRating float64 `bson:"recent_average_rating" json:"recent_average_rating"`

	Badges []string `bson:"badges" json:"badges"`

	LastCalculated time.Time `bson:"last_calculated" json:"last_calculated"`
	CreatedDate    time.Time `bson:"created_date" json:"created_date"`
	UpdatedDate    time.Time `bson:"updated_date" json:"updated_date"`
}

// NewProviderRating returns an all-zero record for providerID.
func NewProviderRating(providerID string) *ProviderRating {
	return &ProviderRating{
		ProviderID: providerID,
		Badges:     []string{},
	}
}

// SubAverage returns the stored average for one detailed rating.
func (r *ProviderRating) SubAverage(k SubRating) float64 {
	switch k {
	case SubRatingOrganization:
		return r.AverageOrganization
	case SubRatingCommunication:
		return r.AverageCommunication
	case SubRatingValue:
		return r.AverageValue
	case SubRatingExperience:
		return r.AverageExperience
	}
	return 0
}

// SetSubAverage stores the average for one detailed rating.
func (r *ProviderRating) SetSubAverage(k SubRating, v float64) {
	switch k {
	case SubRatingOrganization:
		r.AverageOrganization = v
	case SubRatingCommunication:
		r.AverageCommunication = v
	case SubRatingValue:
		r.AverageValue = v
	case SubRatingExperience:
		r.AverageExperience = v
	}
}

// IsStale reports whether the record is older than maxAge at now.
func (r *ProviderRating) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(r.LastCalculated) > maxAge
}

// RatingSummary is the raw fold of a provider's approved reviews, before
// badges and bookkeeping fields are applied. Every average covers only the
// reviews that supply that value and is 0 when none do.
type RatingSummary struct {
	TotalReviews        int
	AverageRating       float64
	SubAverages         map[SubRating]float64
	Distribution        RatingDistribution
	RecentReviews       int
	RecentAverageRating float64
}
