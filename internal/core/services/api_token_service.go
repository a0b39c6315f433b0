package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/utils"
)

// apiTokenService implements the APITokenSvc interface
type apiTokenService struct {
	BaseService
	tokenRepo repositories.APITokenRepository
	gate      portssvc.PermissionGate
}

// NewAPITokenService creates a new instance of apiTokenService
func NewAPITokenService(tokenRepo repositories.APITokenRepository, gate portssvc.PermissionGate) portssvc.APITokenSvc {
	return &apiTokenService{
		tokenRepo: tokenRepo,
		gate:      gate,
	}
}

func (s *apiTokenService) authorize(ctx context.Context, actor domain.Actor) error {
	if !s.gate.Allowed(actor.Role, domain.ActionManageAPITokens) || actor.AgencyID == "" {
		s.GetLogger(ctx).Warn("Permission denied for API token management",
			slog.String("actor_id", actor.ID),
			slog.String("actor_role", string(actor.Role)))
		return fmt.Errorf("%w: role %q may not %s", apperrors.ErrForbidden, actor.Role, domain.ActionManageAPITokens)
	}
	return nil
}

// CreateToken generates a new API token bound to the actor's agency and the given role
func (s *apiTokenService) CreateToken(ctx context.Context, actor domain.Actor, name string, role domain.Role, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if err := s.authorize(ctx, actor); err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(name) == "" {
		return "", nil, apperrors.NewValidationError("token name is required")
	}
	if _, err := domain.ParseRole(string(role)); err != nil || !role.IsAgencyRole() {
		return "", nil, apperrors.NewValidationError(fmt.Sprintf("role %q cannot be assigned to an API token", role))
	}
	if expiresIn != nil && *expiresIn <= 0 {
		return "", nil, apperrors.NewValidationError("expiry must be in the future")
	}

	// Generate a random secret
	secret, err := utils.GenerateSecret(32) // 32 bytes = 256 bits
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Hash the secret for storage
	secretHash, err := utils.HashSecret(secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash token: %w", err)
	}

	var expiresAt *time.Time
	if expiresIn != nil {
		expiry := time.Now().Add(*expiresIn)
		expiresAt = &expiry
	}

	apiToken := &domain.APIToken{
		CreatedBy: actor.ID,
		AgencyID:  actor.AgencyID,
		Role:      role,
		Name:      name,
		TokenHash: secretHash,
		ExpiresAt: expiresAt,
	}

	if err := s.tokenRepo.Create(ctx, apiToken); err != nil {
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.LogInfo(ctx, "API token created", slog.String("token_id", apiToken.ID), slog.String("token_role", string(role)))

	// Return the plaintext key (only time it's available) and the token details
	return apiToken.ID + "." + secret, apiToken, nil
}

// ListTokens returns the live tokens of the actor's agency
func (s *apiTokenService) ListTokens(ctx context.Context, actor domain.Actor) ([]domain.APIToken, error) {
	if err := s.authorize(ctx, actor); err != nil {
		return nil, err
	}

	tokens, err := s.tokenRepo.FindByAgencyID(ctx, actor.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// RevokeToken deletes a token of the actor's agency
func (s *apiTokenService) RevokeToken(ctx context.Context, actor domain.Actor, tokenID string) error {
	if err := s.authorize(ctx, actor); err != nil {
		return err
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.AgencyID != actor.AgencyID {
		return apperrors.NewNotFoundError("token not found")
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.LogInfo(ctx, "API token revoked", slog.String("token_id", tokenID))
	return nil
}

// ValidateToken resolves "<token_id>.<secret>" to the token's actor
func (s *apiTokenService) ValidateToken(ctx context.Context, key string) (*domain.Actor, error) {
	tokenID, secret, ok := strings.Cut(key, ".")
	if !ok || tokenID == "" || secret == "" {
		return nil, fmt.Errorf("%w: malformed api key", apperrors.ErrUnauthorized)
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown api key", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	if token.IsExpired() {
		return nil, fmt.Errorf("%w: api key has expired", apperrors.ErrUnauthorized)
	}
	if !utils.CheckSecretHash(secret, token.TokenHash) {
		return nil, fmt.Errorf("%w: api key mismatch", apperrors.ErrUnauthorized)
	}

	// Update last used timestamp; a failure here must not block the request
	token.UpdateLastUsed()
	if err := s.tokenRepo.TouchLastUsed(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to update API token last_used_at", slog.String("token_id", token.ID))
	}

	actor := token.Actor()
	return &actor, nil
}
