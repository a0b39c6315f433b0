package domain

// TransitionCommand asks the state machine to apply one action to one application.
type TransitionCommand struct {
	ApplicationID string
	Action        Action
	Actor         Actor
	Note          string
	Interview     *InterviewDetails // schedule_interview, reschedule_interview
	Outcome       InterviewOutcome  // complete_interview
}

// TransitionResult is the committed outcome of a transition.
type TransitionResult struct {
	Application  JobApplication    `json:"application"`
	HistoryEntry TransitionRecord  `json:"history_entry"`
	Interview    *InterviewRecord  `json:"interview,omitempty"`
	PrevStatus   ApplicationStatus `json:"-"`
}

// BulkTransitionCommand applies one bulk action to many applications.
// Items come from ApplicationIDs, or from JobPostingID + CandidateIDs.
type BulkTransitionCommand struct {
	Action         Action
	Actor          Actor
	ApplicationIDs []string
	JobPostingID   string
	CandidateIDs   []string
	Note           string
	Interview      *InterviewDetails
}

// BulkResult aggregates per-item outcomes in input order.
type BulkResult struct {
	Success      bool              `json:"success"`
	UpdatedCount int               `json:"updated_count"`
	Failed       []string          `json:"failed,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// CreateApplicationCommand submits a candidate's application to a posting position.
type CreateApplicationCommand struct {
	Actor        Actor
	JobPostingID string
	PositionID   string
	Note         string
}

// ApplicationView is the assembled read model for one application.
type ApplicationView struct {
	Application JobApplication     `json:"application"`
	History     []TransitionRecord `json:"history"`
	Interview   *InterviewRecord   `json:"interview,omitempty"`
	JobPosting  *JobPosting        `json:"job_posting,omitempty"`
	Position    *JobPosition       `json:"position,omitempty"`
	Candidate   *Candidate         `json:"candidate,omitempty"`
}

// ApplicationPage is one page of a listing.
type ApplicationPage struct {
	Applications []JobApplication `json:"applications"`
	NextToken    *string          `json:"next_token,omitempty"`
}

// TransitionEvent is published after a committed change.
type TransitionEvent struct {
	Type          string             `json:"type"`
	ApplicationID string             `json:"application_id"`
	CandidateID   string             `json:"candidate_id"`
	JobPostingID  string             `json:"job_posting_id"`
	AgencyID      string             `json:"agency_id"`
	Action        Action             `json:"action"`
	PrevStatus    *ApplicationStatus `json:"prev_status"`
	NextStatus    ApplicationStatus  `json:"next_status"`
	ActorID       string             `json:"actor_id"`
	OccurredAt    string             `json:"occurred_at"`
}

const (
	EventApplicationCreated      = "application.created"
	EventApplicationTransitioned = "application.transitioned"
)
