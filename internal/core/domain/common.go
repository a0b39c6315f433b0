package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"` // actor id
	LastUpdatedAt time.Time `json:"updated_at"`
	LastUpdatedBy string    `json:"updated_by"` // actor id, empty for system changes
	Version       int64     `json:"version"`    // optimistic concurrency counter
}
