package dto

import "github.com/chasseuragace/code-sub001/internal/core/domain"

// BulkTransitionRequest selects applications either by id or by posting plus candidate ids.
type BulkTransitionRequest struct {
	ApplicationIDs []string `json:"application_ids,omitempty" example:"app-1,app-2"`
	JobPostingID   string   `json:"job_posting_id,omitempty"`
	CandidateIDs   []string `json:"candidate_ids,omitempty"`
	Note           string   `json:"note,omitempty" binding:"max=1000"`
}

// BulkScheduleRequest adds the interview shared by every scheduled application.
type BulkScheduleRequest struct {
	BulkTransitionRequest
	Interview *InterviewDetailsRequest `json:"interview"`
}

// BulkTransitionResponse reports per-item outcomes. Failed lists item ids in input order;
// Errors maps each failed id to its reason.
type BulkTransitionResponse struct {
	Success      bool              `json:"success"`
	UpdatedCount int               `json:"updated_count"`
	Failed       []string          `json:"failed,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// ToCommand builds the bulk command for action on behalf of actor.
func (r BulkTransitionRequest) ToCommand(action domain.Action, actor domain.Actor) domain.BulkTransitionCommand {
	return domain.BulkTransitionCommand{
		Action:         action,
		Actor:          actor,
		ApplicationIDs: r.ApplicationIDs,
		JobPostingID:   r.JobPostingID,
		CandidateIDs:   r.CandidateIDs,
		Note:           r.Note,
	}
}

// ToBulkTransitionResponse converts a bulk result.
func ToBulkTransitionResponse(result *domain.BulkResult) BulkTransitionResponse {
	return BulkTransitionResponse{
		Success:      result.Success,
		UpdatedCount: result.UpdatedCount,
		Failed:       result.Failed,
		Errors:       result.Errors,
	}
}
