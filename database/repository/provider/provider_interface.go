package providerRepo

import (
	"context"

	"tourhub/models"
)

// ProviderRepository defines provider lookups used to snapshot provider
// details onto reviews and ratings.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
}
