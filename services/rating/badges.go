package rating

import "tourhub/models"

const (
	badgeThreshold     = 4.5
	topRatedMinReviews = 5
)

// Badges derives the badge list from a summary. The result depends only on
// the summary, so recomputing an unchanged review set yields the same list.
func Badges(s *models.RatingSummary) []string {
	badges := []string{}
	if s == nil || s.TotalReviews == 0 {
		return badges
	}
	if s.AverageRating >= badgeThreshold && s.TotalReviews >= topRatedMinReviews {
		badges = append(badges, models.BadgeTopRated)
	}
	if s.SubAverages[models.SubRatingCommunication] >= badgeThreshold {
		badges = append(badges, models.BadgeExcellentCommunication)
	}
	if s.SubAverages[models.SubRatingValue] >= badgeThreshold {
		badges = append(badges, models.BadgeGreatValue)
	}
	if s.SubAverages[models.SubRatingExperience] >= badgeThreshold {
		badges = append(badges, models.BadgeOutstandingExperience)
	}
	return badges
}
