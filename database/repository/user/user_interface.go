package userRepo

import (
	"context"

	"tourhub/models"
)

// UserRepository defines the user lookups the review endpoints need. The
// user documents themselves are owned by the account service.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
