package tourRepo

import (
	"context"

	"tourhub/models"
)

// TourRepository reads scheduled tours.
type TourRepository interface {
	GetByID(ctx context.Context, id string) (*models.CustomTour, error)
}

// RegistrationRepository reads tour registrations.
type RegistrationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Registration, error)
}
