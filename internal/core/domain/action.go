package domain

import "fmt"

// Action names an operation a principal may trigger. The permission matrix is keyed on it.
type Action string

const (
	ActionShortlist           Action = "shortlist"
	ActionScheduleInterview   Action = "schedule_interview"
	ActionRescheduleInterview Action = "reschedule_interview"
	ActionCompleteInterview   Action = "complete_interview"
	ActionReject              Action = "reject"
	ActionWithdraw            Action = "withdraw"

	ActionBulkShortlist Action = "bulk_shortlist"
	ActionBulkReject    Action = "bulk_reject"
	ActionBulkSchedule  Action = "bulk_schedule"

	ActionCorrectHistory  Action = "correct_history"
	ActionManageAPITokens Action = "manage_api_tokens"
)

var knownActions = map[Action]struct{}{
	ActionShortlist:           {},
	ActionScheduleInterview:   {},
	ActionRescheduleInterview: {},
	ActionCompleteInterview:   {},
	ActionReject:              {},
	ActionWithdraw:            {},
	ActionBulkShortlist:       {},
	ActionBulkReject:          {},
	ActionBulkSchedule:        {},
	ActionCorrectHistory:      {},
	ActionManageAPITokens:     {},
}

// bulkToSingle maps each bulk action to the single-item transition applied per application.
var bulkToSingle = map[Action]Action{
	ActionBulkShortlist: ActionShortlist,
	ActionBulkReject:    ActionReject,
	ActionBulkSchedule:  ActionScheduleInterview,
}

// ParseAction converts a raw string into a known Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := knownActions[a]; !ok {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// IsBulk reports whether a is one of the bulk actions.
func (a Action) IsBulk() bool {
	_, ok := bulkToSingle[a]
	return ok
}

// IsTransition reports whether a moves an application between statuses.
func (a Action) IsTransition() bool {
	switch a {
	case ActionShortlist, ActionScheduleInterview, ActionRescheduleInterview,
		ActionCompleteInterview, ActionReject, ActionWithdraw:
		return true
	}
	return false
}

// SingleAction returns the per-item action for a bulk action.
func (a Action) SingleAction() (Action, bool) {
	single, ok := bulkToSingle[a]
	return single, ok
}

// CarriesInterview reports whether the action writes the interview record.
func (a Action) CarriesInterview() bool {
	return a == ActionScheduleInterview || a == ActionRescheduleInterview
}

func (a Action) String() string { return string(a) }

// InterviewOutcome is the result payload of complete_interview.
type InterviewOutcome string

const (
	OutcomePassed InterviewOutcome = "passed"
	OutcomeFailed InterviewOutcome = "failed"
)

// ParseOutcome converts a raw string into an InterviewOutcome.
func ParseOutcome(s string) (InterviewOutcome, error) {
	switch InterviewOutcome(s) {
	case OutcomePassed, OutcomeFailed:
		return InterviewOutcome(s), nil
	}
	return "", fmt.Errorf("unknown interview result %q, expected passed or failed", s)
}
