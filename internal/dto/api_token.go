package dto

import (
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
)

// CreateAPITokenRequest represents the request body for creating a new API token
type CreateAPITokenRequest struct {
	// Name is a user-defined name for the token (3-100 characters)
	Name string `json:"name" binding:"required,min=3,max=100" example:"ATS integration"`
	// Role is the agency role requests made with the token act as
	Role string `json:"role" binding:"required,agency_role" example:"recruiter"`
	// ExpiresIn is the duration in seconds after which the token will expire (optional)
	ExpiresIn *int64 `json:"expiresIn,omitempty" binding:"omitempty,min=1" example:"2592000"` // 30 days in seconds
}

// ExpiresInDuration converts ExpiresIn to a duration, nil when unset.
func (r CreateAPITokenRequest) ExpiresInDuration() *time.Duration {
	if r.ExpiresIn == nil {
		return nil
	}
	d := time.Duration(*r.ExpiresIn) * time.Second
	return &d
}

// APITokenResponse represents an API token in the API responses
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	AgencyID   string     `json:"agencyId"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateAPITokenResponse represents the response when creating a new API token
type CreateAPITokenResponse struct {
	TokenString string           `json:"token"` // Only shown once when created
	Details     APITokenResponse `json:"details"`
}

// ListAPITokensResponse represents a list of API tokens
type ListAPITokensResponse []APITokenResponse

// ToAPITokenResponse converts a domain.APIToken to an APITokenResponse
func ToAPITokenResponse(token domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         token.ID,
		Name:       token.Name,
		Role:       string(token.Role),
		AgencyID:   token.AgencyID,
		LastUsedAt: token.LastUsedAt,
		ExpiresAt:  token.ExpiresAt,
		CreatedAt:  token.CreatedAt,
	}
}

// ToAPITokenResponseList converts a slice of domain.APIToken to ListAPITokensResponse
func ToAPITokenResponseList(tokens []domain.APIToken) ListAPITokensResponse {
	result := make(ListAPITokensResponse, len(tokens))
	for i, token := range tokens {
		result[i] = ToAPITokenResponse(token)
	}
	return result
}

// ToCreateAPITokenResponse converts a token string and domain.APIToken to CreateAPITokenResponse
func ToCreateAPITokenResponse(tokenStr string, token domain.APIToken) CreateAPITokenResponse {
	return CreateAPITokenResponse{
		TokenString: tokenStr,
		Details:     ToAPITokenResponse(token),
	}
}
