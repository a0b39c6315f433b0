package mapping

import (
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/chasseuragace/code-sub001/internal/models"
)

// ToModelAPIToken converts a domain APIToken to a model APIToken
func ToModelAPIToken(d domain.APIToken) models.APIToken {
	return models.APIToken{
		ID:         d.ID,
		AgencyID:   d.AgencyID,
		Role:       string(d.Role),
		Name:       d.Name,
		TokenHash:  d.TokenHash,
		CreatedBy:  d.CreatedBy,
		LastUsedAt: d.LastUsedAt,
		ExpiresAt:  d.ExpiresAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainAPIToken converts a model APIToken to a domain APIToken
func ToDomainAPIToken(m models.APIToken) domain.APIToken {
	return domain.APIToken{
		ID:         m.ID,
		AgencyID:   m.AgencyID,
		Role:       domain.Role(m.Role),
		Name:       m.Name,
		TokenHash:  m.TokenHash,
		CreatedBy:  m.CreatedBy,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToDomainAPITokenSlice converts a slice of model APITokens to a slice of domain APITokens
func ToDomainAPITokenSlice(ms []models.APIToken) []domain.APIToken {
	ds := make([]domain.APIToken, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAPIToken(m)
	}
	return ds
}
