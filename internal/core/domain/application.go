package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus is the recruitment stage of a job application.
// The string values are part of the public contract and stored verbatim.
type ApplicationStatus string

const (
	StatusApplied              ApplicationStatus = "applied"
	StatusShortlisted          ApplicationStatus = "shortlisted"
	StatusInterviewScheduled   ApplicationStatus = "interview_scheduled"
	StatusInterviewRescheduled ApplicationStatus = "interview_rescheduled"
	StatusInterviewPassed      ApplicationStatus = "interview_passed"
	StatusInterviewFailed      ApplicationStatus = "interview_failed"
	StatusWithdrawn            ApplicationStatus = "withdrawn"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusInterviewRescheduled,
	StatusInterviewPassed,
	StatusInterviewFailed,
	StatusWithdrawn,
}

// ParseStatus converts a raw string to an ApplicationStatus, rejecting unknown values.
func ParseStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	if st.IsValid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsValid reports whether s is one of the known statuses.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusInterviewScheduled, StatusInterviewRescheduled,
		StatusInterviewPassed, StatusInterviewFailed, StatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether no ordinary transition leaves s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusInterviewPassed || s == StatusInterviewFailed || s == StatusWithdrawn
}

func (s ApplicationStatus) String() string { return string(s) }

// JobApplication is a candidate's single application to one position within one job posting.
// It owns its history and interview record; both change only through state machine transitions.
type JobApplication struct {
	ApplicationID string            `json:"id"`
	CandidateID   string            `json:"candidate_id"`
	JobPostingID  string            `json:"job_posting_id"`
	PositionID    string            `json:"position_id"`
	AgencyID      string            `json:"agency_id"`
	Status        ApplicationStatus `json:"status"`
	WithdrawnAt   *time.Time        `json:"withdrawn_at,omitempty"`
	AuditFields
}

// ApplicationFilter narrows application listings. Empty fields are ignored.
type ApplicationFilter struct {
	AgencyID     string
	CandidateID  string
	JobPostingID string
	PositionID   string
	Status       ApplicationStatus
}
