// File: models/tour.go
package models

import "time"

// CustomTour is the read model of a scheduled tour owned by the tour service.
type CustomTour struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	TourName   string    `bson:"tour_name" json:"tour_name"`
	StartDate  time.Time `bson:"start_date" json:"start_date"`
	EndDate    time.Time `bson:"end_date" json:"end_date"`
	Status     string    `bson:"status" json:"status"`
}

// HasEnded reports whether the tour's end date is strictly before now.
func (t *CustomTour) HasEnded(now time.Time) bool {
	return t.EndDate.Before(now)
}

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationApproved  RegistrationStatus = "approved"
	RegistrationRejected  RegistrationStatus = "rejected"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration is a tourist's enrolment in a tour.
type Registration struct {
	ID           string             `bson:"id" json:"id"`
	CustomTourID string             `bson:"custom_tour_id" json:"custom_tour_id"`
	TouristID    string             `bson:"tourist_id" json:"tourist_id"`
	Status       RegistrationStatus `bson:"status" json:"status"`
}
