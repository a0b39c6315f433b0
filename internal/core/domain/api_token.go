package domain

import "time"

// APIToken authenticates an agency's integration client. It carries a fixed role
// and agency so requests made with it resolve to an Actor.
type APIToken struct {
	ID         string     `json:"id"`
	CreatedBy  string     `json:"created_by"`
	AgencyID   string     `json:"agency_id"`
	Role       Role       `json:"role"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"` // Never expose the hash in JSON responses
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"` // For soft deletes
}

// IsExpired checks if the token has expired
func (t *APIToken) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(time.Now())
}

// UpdateLastUsed updates the LastUsedAt timestamp to the current time
func (t *APIToken) UpdateLastUsed() {
	now := time.Now()
	t.LastUsedAt = &now
}

// Actor returns the identity requests authenticated with this token act as.
func (t *APIToken) Actor() Actor {
	return Actor{ID: "api_token:" + t.ID, Role: t.Role, AgencyID: t.AgencyID}
}
