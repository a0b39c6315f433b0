package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func statusPtr(s ApplicationStatus) *ApplicationStatus { return &s }

func chain(statuses ...ApplicationStatus) []TransitionRecord {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]TransitionRecord, 0, len(statuses))
	var prev *ApplicationStatus
	for i, s := range statuses {
		out = append(out, NewTransitionRecord("app-1", prev, s, "actor-1", "", at.Add(time.Duration(i)*time.Minute)))
		prev = statusPtr(s)
	}
	return out
}

func TestVerifyHistory_ValidChain(t *testing.T) {
	history := chain(StatusApplied, StatusShortlisted, StatusInterviewScheduled)
	assert.NoError(t, VerifyHistory(history, StatusInterviewScheduled))
}

func TestVerifyHistory_Violations(t *testing.T) {
	tests := []struct {
		name    string
		history []TransitionRecord
		current ApplicationStatus
	}{
		{"empty", nil, StatusApplied},
		{"stale current status", chain(StatusApplied, StatusShortlisted), StatusApplied},
		{
			"broken link",
			append(chain(StatusApplied, StatusShortlisted), TransitionRecord{
				PrevStatus: statusPtr(StatusApplied),
				NextStatus: StatusWithdrawn,
			}),
			StatusWithdrawn,
		},
		{
			"missing creation record",
			[]TransitionRecord{{PrevStatus: statusPtr(StatusApplied), NextStatus: StatusShortlisted}},
			StatusShortlisted,
		},
		{
			"second null prev",
			append(chain(StatusApplied), TransitionRecord{NextStatus: StatusShortlisted}),
			StatusShortlisted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyHistory(tt.history, tt.current)
			var v HistoryViolation
			assert.ErrorAs(t, err, &v)
		})
	}
}

func TestVerifyHistory_SkipsCorrectedEntries(t *testing.T) {
	history := chain(StatusApplied, StatusShortlisted)
	note := "shortlisted by mistake on the phone, confirmed later"
	history = append(history, TransitionRecord{
		PrevStatus: statusPtr(StatusShortlisted),
		NextStatus: StatusShortlisted,
		Note:       &note,
		Corrected:  true,
	})
	history = append(history, TransitionRecord{
		PrevStatus: statusPtr(StatusShortlisted),
		NextStatus: StatusWithdrawn,
	})

	assert.NoError(t, VerifyHistory(history, StatusWithdrawn))

	current, ok := CurrentStatusFromHistory(history)
	assert.True(t, ok)
	assert.Equal(t, StatusWithdrawn, current)
}

func TestNewTransitionRecord_NullableFields(t *testing.T) {
	rec := NewTransitionRecord("app-1", nil, StatusApplied, "", "", time.Now())
	assert.Nil(t, rec.PrevStatus)
	assert.Nil(t, rec.UpdatedBy)
	assert.Nil(t, rec.Note)
	assert.False(t, rec.Corrected)

	rec = NewTransitionRecord("app-1", statusPtr(StatusApplied), StatusShortlisted, "u-1", "good fit", time.Now())
	assert.Equal(t, "u-1", *rec.UpdatedBy)
	assert.Equal(t, "good fit", *rec.Note)
}

func TestHasTransition(t *testing.T) {
	history := chain(StatusApplied, StatusShortlisted, StatusInterviewScheduled)
	history = append(history, TransitionRecord{
		PrevStatus: statusPtr(StatusInterviewScheduled),
		NextStatus: StatusInterviewScheduled,
		Corrected:  true,
	})

	tests := []struct {
		name string
		prev *ApplicationStatus
		next ApplicationStatus
		want bool
	}{
		{"creation", nil, StatusApplied, true},
		{"taken pair", statusPtr(StatusApplied), StatusShortlisted, true},
		{"latest pair", statusPtr(StatusShortlisted), StatusInterviewScheduled, true},
		{"pair not taken", statusPtr(StatusApplied), StatusInterviewScheduled, false},
		{"creation needs nil prev", statusPtr(StatusApplied), StatusApplied, false},
		{"corrected entries ignored", statusPtr(StatusInterviewScheduled), StatusInterviewScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasTransition(history, tt.prev, tt.next))
		})
	}
}
