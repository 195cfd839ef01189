package models

import "time"

// RecentWindow is how far back a review counts toward the recent figures.
const RecentWindow = 30 * 24 * time.Hour

type meanAcc struct {
	sum   int
	count int
}

func (m *meanAcc) add(v int) {
	m.sum += v
	m.count++
}

func (m meanAcc) mean() float64 {
	if m.count == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.count)
}

// SummarizeReviews folds reviews into a RatingSummary. The caller is
// responsible for passing only approved reviews of a single provider.
// Reviews created at or after recentSince count toward the recent figures.
func SummarizeReviews(reviews []Review, recentSince time.Time) RatingSummary {
	summary := RatingSummary{SubAverages: make(map[SubRating]float64, len(SubRatings))}

	var overall, recent meanAcc
	subs := make(map[SubRating]*meanAcc, len(SubRatings))
	for _, k := range SubRatings {
		subs[k] = &meanAcc{}
	}

	for i := range reviews {
		r := &reviews[i]
		overall.add(r.OverallRating)
		summary.Distribution.Add(r.OverallRating)
		for _, k := range SubRatings {
			if v := r.SubRating(k); v != nil {
				subs[k].add(*v)
			}
		}
		if !r.CreatedDate.Before(recentSince) {
			recent.add(r.OverallRating)
		}
	}

	summary.TotalReviews = len(reviews)
	summary.AverageRating = overall.mean()
	for _, k := range SubRatings {
		summary.SubAverages[k] = subs[k].mean()
	}
	summary.RecentReviews = recent.count
	summary.RecentAverageRating = recent.mean()
	return summary
}
