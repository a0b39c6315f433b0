package repositories

import (
	"context"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
)

// APITokenRepository defines the interface for API token data access operations
type APITokenRepository interface {
	// Create persists a new API token and fills its generated fields
	Create(ctx context.Context, token *domain.APIToken) error

	// FindByID retrieves a live (not deleted) API token by its ID
	FindByID(ctx context.Context, id string) (*domain.APIToken, error)

	// FindByAgencyID retrieves all live API tokens of an agency
	FindByAgencyID(ctx context.Context, agencyID string) ([]domain.APIToken, error)

	// TouchLastUsed records that the token was just used
	TouchLastUsed(ctx context.Context, token *domain.APIToken) error

	// Delete soft-deletes an API token by ID
	Delete(ctx context.Context, id string) error
}
