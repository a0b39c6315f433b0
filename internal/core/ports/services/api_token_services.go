package services

import (
	"context"
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
)

// APITokenSvc defines operations for API token management
type APITokenSvc interface {
	// CreateToken generates a new API token for the actor's agency.
	// Returns the plaintext key (only shown once) and the token details
	CreateToken(ctx context.Context, actor domain.Actor, name string, role domain.Role, expiresIn *time.Duration) (string, *domain.APIToken, error)

	// ListTokens returns the live tokens of the actor's agency
	ListTokens(ctx context.Context, actor domain.Actor) ([]domain.APIToken, error)

	// RevokeToken deletes a token of the actor's agency
	RevokeToken(ctx context.Context, actor domain.Actor, tokenID string) error

	// ValidateToken resolves an x-api-key value to the Actor it authenticates.
	// Updates the last_used_at timestamp if the token is valid
	ValidateToken(ctx context.Context, key string) (*domain.Actor, error)
}
