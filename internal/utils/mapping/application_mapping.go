package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/chasseuragace/code-sub001/internal/models"
)

// ToModelApplication converts a domain JobApplication to a model Application
func ToModelApplication(d domain.JobApplication) models.Application {
	return models.Application{
		ApplicationID: d.ApplicationID,
		CandidateID:   d.CandidateID,
		JobPostingID:  d.JobPostingID,
		PositionID:    d.PositionID,
		AgencyID:      d.AgencyID,
		Status:        string(d.Status),
		WithdrawnAt:   d.WithdrawnAt,
		AuditFields:   models.AuditFields(d.AuditFields), // same field set, tags differ
	}
}

// ToDomainApplication converts a model Application to a domain JobApplication
func ToDomainApplication(m models.Application) domain.JobApplication {
	return domain.JobApplication{
		ApplicationID: m.ApplicationID,
		CandidateID:   m.CandidateID,
		JobPostingID:  m.JobPostingID,
		PositionID:    m.PositionID,
		AgencyID:      m.AgencyID,
		Status:        domain.ApplicationStatus(m.Status),
		WithdrawnAt:   m.WithdrawnAt,
		AuditFields:   domain.AuditFields(m.AuditFields),
	}
}

// ToModelHistoryEntry converts a domain TransitionRecord to a model HistoryEntry
func ToModelHistoryEntry(d domain.TransitionRecord) models.HistoryEntry {
	var prev *string
	if d.PrevStatus != nil {
		p := string(*d.PrevStatus)
		prev = &p
	}
	return models.HistoryEntry{
		ApplicationID: d.ApplicationID,
		Seq:           d.Seq,
		PrevStatus:    prev,
		NextStatus:    string(d.NextStatus),
		UpdatedAt:     d.UpdatedAt,
		UpdatedBy:     d.UpdatedBy,
		Note:          d.Note,
		Corrected:     d.Corrected,
	}
}

// ToDomainHistoryEntry converts a model HistoryEntry to a domain TransitionRecord
func ToDomainHistoryEntry(m models.HistoryEntry) domain.TransitionRecord {
	var prev *domain.ApplicationStatus
	if m.PrevStatus != nil {
		p := domain.ApplicationStatus(*m.PrevStatus)
		prev = &p
	}
	return domain.TransitionRecord{
		ApplicationID: m.ApplicationID,
		Seq:           m.Seq,
		PrevStatus:    prev,
		NextStatus:    domain.ApplicationStatus(m.NextStatus),
		UpdatedAt:     m.UpdatedAt,
		UpdatedBy:     m.UpdatedBy,
		Note:          m.Note,
		Corrected:     m.Corrected,
	}
}

// ToModelInterview converts a domain InterviewRecord to a model Interview
func ToModelInterview(d domain.InterviewRecord) (models.Interview, error) {
	expenses := d.Expenses
	if expenses == nil {
		expenses = []domain.InterviewExpense{}
	}
	raw, err := json.Marshal(expenses)
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to encode interview expenses: %w", err)
	}
	docs := d.RequiredDocuments
	if docs == nil {
		docs = []string{}
	}
	return models.Interview{
		ApplicationID:     d.ApplicationID,
		InterviewDate:     d.Date,
		InterviewTime:     d.Time,
		Location:          d.Location,
		ContactPerson:     d.ContactPerson,
		RequiredDocuments: docs,
		Notes:             d.Notes,
		Expenses:          raw,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

// ToDomainInterview converts a model Interview to a domain InterviewRecord
func ToDomainInterview(m models.Interview) (domain.InterviewRecord, error) {
	var expenses []domain.InterviewExpense
	if len(m.Expenses) > 0 {
		if err := json.Unmarshal(m.Expenses, &expenses); err != nil {
			return domain.InterviewRecord{}, fmt.Errorf("failed to decode interview expenses: %w", err)
		}
	}
	if len(expenses) == 0 {
		expenses = nil
	}
	return domain.InterviewRecord{
		ApplicationID: m.ApplicationID,
		InterviewDetails: domain.InterviewDetails{
			Date:              m.InterviewDate,
			Time:              m.InterviewTime,
			Location:          m.Location,
			ContactPerson:     m.ContactPerson,
			RequiredDocuments: m.RequiredDocuments,
			Notes:             m.Notes,
			Expenses:          expenses,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
