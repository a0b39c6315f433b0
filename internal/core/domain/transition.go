package domain

import "errors"

// ErrTransitionNotAllowed is returned by Resolve when the action is illegal from the given status.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// TransitionTable holds the legal from → to moves of the application lifecycle.
// It is built once and never mutated.
type TransitionTable struct {
	edges map[ApplicationStatus]map[ApplicationStatus]struct{}
}

// NewTransitionTable builds the lifecycle graph. When allowWithdrawAfterPass is true,
// interview_passed may still move to withdrawn.
func NewTransitionTable(allowWithdrawAfterPass bool) *TransitionTable {
	edges := map[ApplicationStatus]map[ApplicationStatus]struct{}{
		StatusApplied: {
			StatusShortlisted: {},
			StatusWithdrawn:   {},
		},
		StatusShortlisted: {
			StatusInterviewScheduled: {},
			StatusWithdrawn:          {},
		},
		StatusInterviewScheduled: {
			StatusInterviewRescheduled: {},
			StatusInterviewPassed:      {},
			StatusInterviewFailed:      {},
			StatusWithdrawn:            {},
		},
		StatusInterviewRescheduled: {
			StatusInterviewScheduled: {},
			StatusInterviewPassed:    {},
			StatusInterviewFailed:    {},
			StatusWithdrawn:          {},
		},
		StatusInterviewPassed: {},
		StatusInterviewFailed: {},
		StatusWithdrawn:       {},
	}
	if allowWithdrawAfterPass {
		edges[StatusInterviewPassed][StatusWithdrawn] = struct{}{}
	}
	return &TransitionTable{edges: edges}
}

// CanMove reports whether from → to is a legal edge.
func (t *TransitionTable) CanMove(from, to ApplicationStatus) bool {
	next, ok := t.edges[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Target returns the status an action leads to. complete_interview needs an outcome.
func Target(action Action, outcome InterviewOutcome) (ApplicationStatus, bool) {
	switch action {
	case ActionShortlist:
		return StatusShortlisted, true
	case ActionScheduleInterview:
		return StatusInterviewScheduled, true
	case ActionRescheduleInterview:
		return StatusInterviewRescheduled, true
	case ActionCompleteInterview:
		switch outcome {
		case OutcomePassed:
			return StatusInterviewPassed, true
		case OutcomeFailed:
			return StatusInterviewFailed, true
		}
		return "", false
	case ActionReject, ActionWithdraw:
		return StatusWithdrawn, true
	}
	return "", false
}

// Resolve returns the next status for action applied at from, or ErrTransitionNotAllowed.
// Repeating an action that targets the current status is never a no-op.
func (t *TransitionTable) Resolve(from ApplicationStatus, action Action, outcome InterviewOutcome) (ApplicationStatus, error) {
	to, ok := Target(action, outcome)
	if !ok {
		return "", ErrTransitionNotAllowed
	}
	if !t.CanMove(from, to) {
		return "", ErrTransitionNotAllowed
	}
	return to, nil
}
