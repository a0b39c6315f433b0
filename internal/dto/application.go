package dto

import (
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateApplicationRequest defines the body for submitting an application.
type CreateApplicationRequest struct {
	JobPostingID string `json:"job_posting_id" binding:"required" example:"posting-123"`
	PositionID   string `json:"position_id" binding:"required" example:"position-7"`
	Note         string `json:"note,omitempty" binding:"max=1000"`
}

// InterviewExpenseRequest is one cost line of an interview.
type InterviewExpenseRequest struct {
	Type       string          `json:"type" binding:"required" example:"medical"`
	Payer      string          `json:"payer" example:"agency"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	Refundable bool            `json:"refundable"`
}

// InterviewDetailsRequest carries the interview fields of schedule and reschedule.
type InterviewDetailsRequest struct {
	Date              string                    `json:"date" binding:"required,interview_date" example:"2025-06-01"`
	Time              string                    `json:"time" binding:"required,interview_time" example:"10:30"`
	Location          string                    `json:"location" binding:"required" example:"Kathmandu office"`
	ContactPerson     string                    `json:"contact_person" binding:"required" example:"Front desk"`
	RequiredDocuments []string                  `json:"required_documents,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
	Expenses          []InterviewExpenseRequest `json:"expenses,omitempty" binding:"omitempty,dive"`
}

// ToDomain converts the request into domain interview details. A nil request yields nil.
func (r *InterviewDetailsRequest) ToDomain() *domain.InterviewDetails {
	if r == nil {
		return nil
	}
	details := &domain.InterviewDetails{
		Date:              r.Date,
		Time:              r.Time,
		Location:          r.Location,
		ContactPerson:     r.ContactPerson,
		RequiredDocuments: r.RequiredDocuments,
		Notes:             r.Notes,
	}
	for _, e := range r.Expenses {
		details.Expenses = append(details.Expenses, domain.InterviewExpense{
			Type:       e.Type,
			Payer:      e.Payer,
			Amount:     e.Amount,
			Refundable: e.Refundable,
		})
	}
	return details
}

// TransitionRequest is the generic body of POST /applications/{id}/transitions.
type TransitionRequest struct {
	Action    string                   `json:"action" binding:"required,application_action" example:"shortlist"`
	Note      string                   `json:"note,omitempty" binding:"max=1000"`
	Interview *InterviewDetailsRequest `json:"interview,omitempty"`
	Result    string                   `json:"result,omitempty" binding:"omitempty,oneof=passed failed" example:"passed"`
}

// NoteRequest is the optional body of shortlist, reject and withdraw.
type NoteRequest struct {
	Note string `json:"note,omitempty" binding:"max=1000"`
}

// ScheduleInterviewRequest is the body of schedule-interview and reschedule-interview.
type ScheduleInterviewRequest struct {
	InterviewDetailsRequest
	Note string `json:"note,omitempty" binding:"max=1000"`
}

// CompleteInterviewRequest is the body of complete-interview.
type CompleteInterviewRequest struct {
	Result string `json:"result" binding:"required,oneof=passed failed" example:"passed"`
	Note   string `json:"note,omitempty" binding:"max=1000"`
}

// CorrectionRequest is the body of a history correction. next_status, with prev_status
// (omitted for the creation record), names the earlier transition being corrected; without
// them the correction annotates the current status.
type CorrectionRequest struct {
	Note       string  `json:"note" binding:"required,max=1000" example:"Shortlisted by mistake, candidate lacked passport"`
	PrevStatus *string `json:"prev_status,omitempty" binding:"omitempty,application_status" example:"applied"`
	NextStatus *string `json:"next_status,omitempty" binding:"required_with=PrevStatus,omitempty,application_status" example:"shortlisted"`
}

// ToCommand converts the request into a domain correction command.
func (r CorrectionRequest) ToCommand(applicationID string, actor domain.Actor) domain.CorrectionCommand {
	cmd := domain.CorrectionCommand{ApplicationID: applicationID, Actor: actor, Note: r.Note}
	if r.PrevStatus != nil {
		prev := domain.ApplicationStatus(*r.PrevStatus)
		cmd.PrevStatus = &prev
	}
	if r.NextStatus != nil {
		next := domain.ApplicationStatus(*r.NextStatus)
		cmd.NextStatus = &next
	}
	return cmd
}

// ListApplicationsParams defines the query parameters of GET /applications.
type ListApplicationsParams struct {
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken    string `form:"next_token"`
	Status       string `form:"status" binding:"omitempty,application_status"`
	JobPostingID string `form:"job_posting_id"`
	PositionID   string `form:"position_id"`
	CandidateID  string `form:"candidate_id"`
}

// HistoryEntryResponse is one ledger entry.
type HistoryEntryResponse struct {
	PrevStatus *string   `json:"prev_status"`
	NextStatus string    `json:"next_status"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedBy  *string   `json:"updated_by"`
	Note       *string   `json:"note"`
	Corrected  bool      `json:"corrected"`
}

// HistoryResponse is the body of GET /applications/{id}/history.
type HistoryResponse struct {
	ApplicationID string                 `json:"application_id"`
	History       []HistoryEntryResponse `json:"history"`
}

// ApplicationResponse is the public shape of a job application.
type ApplicationResponse struct {
	ApplicationID string     `json:"id"`
	CandidateID   string     `json:"candidate_id"`
	JobPostingID  string     `json:"job_posting_id"`
	PositionID    string     `json:"position_id"`
	AgencyID      string     `json:"agency_id"`
	Status        string     `json:"status"`
	WithdrawnAt   *time.Time `json:"withdrawn_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Version       int64      `json:"version"`
}

// TransitionResponse is returned by every single-application transition.
type TransitionResponse struct {
	Application  ApplicationResponse     `json:"application"`
	PrevStatus   *string                 `json:"prev_status"`
	HistoryEntry HistoryEntryResponse    `json:"history_entry"`
	Interview    *domain.InterviewRecord `json:"interview,omitempty"`
}

// ApplicationDetailResponse is the assembled view of one application.
type ApplicationDetailResponse struct {
	Application ApplicationResponse     `json:"application"`
	History     []HistoryEntryResponse  `json:"history"`
	Interview   *domain.InterviewRecord `json:"interview,omitempty"`
	JobPosting  *domain.JobPosting      `json:"job_posting,omitempty"`
	Position    *domain.JobPosition     `json:"position,omitempty"`
	Candidate   *domain.Candidate       `json:"candidate,omitempty"`
}

// ListApplicationsResponse is one page of applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	NextToken    *string               `json:"next_token,omitempty"`
}

func statusPtr(s *domain.ApplicationStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// ToHistoryEntryResponse converts a ledger entry.
func ToHistoryEntryResponse(rec domain.TransitionRecord) HistoryEntryResponse {
	return HistoryEntryResponse{
		PrevStatus: statusPtr(rec.PrevStatus),
		NextStatus: string(rec.NextStatus),
		UpdatedAt:  rec.UpdatedAt,
		UpdatedBy:  rec.UpdatedBy,
		Note:       rec.Note,
		Corrected:  rec.Corrected,
	}
}

// ToHistoryResponse converts an application's ledger, keeping its order.
func ToHistoryResponse(applicationID string, history []domain.TransitionRecord) HistoryResponse {
	resp := HistoryResponse{ApplicationID: applicationID, History: make([]HistoryEntryResponse, len(history))}
	for i, rec := range history {
		resp.History[i] = ToHistoryEntryResponse(rec)
	}
	return resp
}

// ToApplicationResponse converts a domain application.
func ToApplicationResponse(app domain.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID: app.ApplicationID,
		CandidateID:   app.CandidateID,
		JobPostingID:  app.JobPostingID,
		PositionID:    app.PositionID,
		AgencyID:      app.AgencyID,
		Status:        string(app.Status),
		WithdrawnAt:   app.WithdrawnAt,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.LastUpdatedAt,
		Version:       app.Version,
	}
}

// ToTransitionResponse converts a committed transition.
func ToTransitionResponse(result *domain.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Application:  ToApplicationResponse(result.Application),
		PrevStatus:   statusPtr(result.HistoryEntry.PrevStatus),
		HistoryEntry: ToHistoryEntryResponse(result.HistoryEntry),
		Interview:    result.Interview,
	}
}

// ToApplicationDetailResponse converts the assembled read model.
func ToApplicationDetailResponse(view *domain.ApplicationView) ApplicationDetailResponse {
	history := ToHistoryResponse(view.Application.ApplicationID, view.History)
	return ApplicationDetailResponse{
		Application: ToApplicationResponse(view.Application),
		History:     history.History,
		Interview:   view.Interview,
		JobPosting:  view.JobPosting,
		Position:    view.Position,
		Candidate:   view.Candidate,
	}
}

// ToListApplicationsResponse converts a listing page.
func ToListApplicationsResponse(page *domain.ApplicationPage) ListApplicationsResponse {
	resp := ListApplicationsResponse{
		Applications: make([]ApplicationResponse, len(page.Applications)),
		NextToken:    page.NextToken,
	}
	for i, app := range page.Applications {
		resp.Applications[i] = ToApplicationResponse(app)
	}
	return resp
}
