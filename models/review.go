// File: models/review.go
package models

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
	ReviewFlagged  ReviewStatus = "flagged"
)

// Valid reports whether s is one of the four known statuses.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewFlagged:
		return true
	}
	return false
}

// IsModerationTarget reports whether a moderator may move a review into s.
// Pending is only ever the initial state.
func (s ReviewStatus) IsModerationTarget() bool {
	return s == ReviewApproved || s == ReviewRejected || s == ReviewFlagged
}

// ProviderResponse is the single reply a provider may attach to a review.
type ProviderResponse struct {
	ResponseText string    `bson:"response_text" json:"response_text"`
	RespondedBy  string    `bson:"responded_by" json:"responded_by"`
	RespondedAt  time.Time `bson:"responded_at" json:"responded_at"`
}

// Review is one tourist's assessment of one completed tour.
//
// The tourist/tour/provider name and date fields are a snapshot taken when
// the review was written and are deliberately never refreshed.
type Review struct {
	ID             string `bson:"id" json:"id"`
	CustomTourID   string `bson:"custom_tour_id" json:"custom_tour_id"`
	RegistrationID string `bson:"registration_id" json:"registration_id"`
	TouristID      string `bson:"tourist_id" json:"tourist_id"`
	ProviderID     string `bson:"provider_id" json:"provider_id"`

	OverallRating int `bson:"overall_rating" json:"overall_rating"`
	// Sub-ratings are optional; nil means "not given", never zero.
	OrganizationRating  *int `bson:"organization_rating,omitempty" json:"organization_rating,omitempty"`
	CommunicationRating *int `bson:"communication_rating,omitempty" json:"communication_rating,omitempty"`
	ValueRating         *int `bson:"value_rating,omitempty" json:"value_rating,omitempty"`
	ExperienceRating    *int `bson:"experience_rating,omitempty" json:"experience_rating,omitempty"`

	Title      string   `bson:"title" json:"title"`
	ReviewText string   `bson:"review_text" json:"review_text"`
	Pros       []string `bson:"pros" json:"pros"`
	Cons       []string `bson:"cons" json:"cons"`

	Status          ReviewStatus `bson:"status" json:"status"`
	ModerationNotes string       `bson:"moderation_notes,omitempty" json:"moderation_notes,omitempty"`
	ModeratedBy     string       `bson:"moderated_by,omitempty" json:"moderated_by,omitempty"`
	ModeratedAt     *time.Time   `bson:"moderated_at,omitempty" json:"moderated_at,omitempty"`

	HelpfulVotes    int `bson:"helpful_votes" json:"helpful_votes"`
	NotHelpfulVotes int `bson:"not_helpful_votes" json:"not_helpful_votes"`

	ProviderResponse *ProviderResponse `bson:"provider_response,omitempty" json:"provider_response,omitempty"`

	IsVerifiedPurchase bool `bson:"is_verified_purchase" json:"is_verified_purchase"`

	TouristName           string    `bson:"tourist_name" json:"tourist_name"`
	TouristProfilePicture string    `bson:"tourist_profile_picture,omitempty" json:"tourist_profile_picture,omitempty"`
	TourName              string    `bson:"tour_name" json:"tour_name"`
	ProviderName          string    `bson:"provider_name" json:"provider_name"`
	TourStartDate         time.Time `bson:"tour_start_date" json:"tour_start_date"`
	TourEndDate           time.Time `bson:"tour_end_date" json:"tour_end_date"`

	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedDate time.Time `bson:"created_date" json:"created_date"`
	UpdatedDate time.Time `bson:"updated_date" json:"updated_date"`
}

// SubRating names one of the four optional detailed ratings.
type SubRating string

const (
	SubRatingOrganization  SubRating = "organization"
	SubRatingCommunication SubRating = "communication"
	SubRatingValue         SubRating = "value"
	SubRatingExperience    SubRating = "experience"
)

// SubRatings lists the detailed ratings in a stable order.
var SubRatings = []SubRating{
	SubRatingOrganization,
	SubRatingCommunication,
	SubRatingValue,
	SubRatingExperience,
}

// SubRating returns the detailed rating named by k, or nil when absent.
func (r *Review) SubRating(k SubRating) *int {
	switch k {
	case SubRatingOrganization:
		return r.OrganizationRating
	case SubRatingCommunication:
		return r.CommunicationRating
	case SubRatingValue:
		return r.ValueRating
	case SubRatingExperience:
		return r.ExperienceRating
	}
	return nil
}

// ReviewFilter narrows ListReviews.
type ReviewFilter struct {
	TourID     string
	ProviderID string
	Status     ReviewStatus
	Page       int
	Limit      int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count for total items.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ReviewVote records one voter's helpfulness verdict on one review.
type ReviewVote struct {
	ReviewID  string    `bson:"review_id" json:"review_id"`
	VoterID   string    `bson:"voter_id" json:"voter_id"`
	Helpful   bool      `bson:"helpful" json:"helpful"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// VoteTally is the recount of a review's votes.
type VoteTally struct {
	Helpful    int `bson:"helpful" json:"helpful"`
	NotHelpful int `bson:"not_helpful" json:"not_helpful"`
}
