package models

import "time"

// APIToken represents an agency integration key
type APIToken struct {
	ID         string     `json:"id" db:"api_token_id"`
	AgencyID   string     `json:"agencyID" db:"agency_id"`
	Role       string     `json:"role" db:"role"`
	Name       string     `json:"name" db:"name"`
	TokenHash  string     `json:"-" db:"token_hash"`
	CreatedBy  string     `json:"createdBy" db:"created_by"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
