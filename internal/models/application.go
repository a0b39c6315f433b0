package models

import "time"

// AuditFields mirrors the audit columns shared by mutable tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
	Version       int64     `db:"version"`
}

// Application is a row of job_applications.
type Application struct {
	ApplicationID string     `db:"application_id"`
	CandidateID   string     `db:"candidate_id"`
	JobPostingID  string     `db:"job_posting_id"`
	PositionID    string     `db:"position_id"`
	AgencyID      string     `db:"agency_id"`
	Status        string     `db:"status"`
	WithdrawnAt   *time.Time `db:"withdrawn_at"`
	AuditFields
}

// HistoryEntry is a row of application_history. Rows are insert-only.
type HistoryEntry struct {
	ApplicationID string    `db:"application_id"`
	Seq           int64     `db:"seq"`
	PrevStatus    *string   `db:"prev_status"`
	NextStatus    string    `db:"next_status"`
	UpdatedAt     time.Time `db:"updated_at"`
	UpdatedBy     *string   `db:"updated_by"`
	Note          *string   `db:"note"`
	Corrected     bool      `db:"corrected"`
}

// Interview is a row of interview_details; at most one per application.
type Interview struct {
	ApplicationID     string    `db:"application_id"`
	InterviewDate     string    `db:"interview_date"`
	InterviewTime     string    `db:"interview_time"`
	Location          string    `db:"location"`
	ContactPerson     string    `db:"contact_person"`
	RequiredDocuments []string  `db:"required_documents"`
	Notes             string    `db:"notes"`
	Expenses          []byte    `db:"expenses"` // JSONB
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
