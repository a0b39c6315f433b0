package domain

import (
	"fmt"
	"time"
)

// TransitionRecord is one entry of an application's append-only status ledger.
// PrevStatus is nil only for the creation record.
type TransitionRecord struct {
	ApplicationID string             `json:"-"`
	Seq           int64              `json:"-"`
	PrevStatus    *ApplicationStatus `json:"prev_status"`
	NextStatus    ApplicationStatus  `json:"next_status"`
	UpdatedAt     time.Time          `json:"updated_at"`
	UpdatedBy     *string            `json:"updated_by"`
	Note          *string            `json:"note"`
	Corrected     bool               `json:"corrected"`
}

// NewTransitionRecord builds a ledger entry for a status move made by actorID.
func NewTransitionRecord(applicationID string, prev *ApplicationStatus, next ApplicationStatus, actorID string, note string, at time.Time) TransitionRecord {
	rec := TransitionRecord{
		ApplicationID: applicationID,
		PrevStatus:    prev,
		NextStatus:    next,
		UpdatedAt:     at,
	}
	if actorID != "" {
		rec.UpdatedBy = &actorID
	}
	if note != "" {
		rec.Note = &note
	}
	return rec
}

// HistoryViolation describes a break in the ledger chain.
type HistoryViolation struct {
	Index  int
	Reason string
}

func (v HistoryViolation) Error() string {
	return fmt.Sprintf("history entry %d: %s", v.Index, v.Reason)
}

// VerifyHistory checks that non-corrected entries form an unbroken chain starting with a
// creation record and ending at current. Corrected entries are annotations and are skipped.
func VerifyHistory(history []TransitionRecord, current ApplicationStatus) error {
	var last *TransitionRecord
	for i := range history {
		rec := &history[i]
		if rec.Corrected {
			continue
		}
		if last == nil {
			if rec.PrevStatus != nil {
				return HistoryViolation{Index: i, Reason: "first entry must be the creation record"}
			}
		} else {
			if rec.PrevStatus == nil {
				return HistoryViolation{Index: i, Reason: "only the first entry may have a null prev_status"}
			}
			if *rec.PrevStatus != last.NextStatus {
				return HistoryViolation{Index: i, Reason: fmt.Sprintf("prev_status %q does not follow %q", *rec.PrevStatus, last.NextStatus)}
			}
		}
		last = rec
	}
	if last == nil {
		return HistoryViolation{Index: 0, Reason: "no creation record"}
	}
	if last.NextStatus != current {
		return HistoryViolation{Index: len(history) - 1, Reason: fmt.Sprintf("last next_status %q differs from current status %q", last.NextStatus, current)}
	}
	return nil
}

// CurrentStatusFromHistory reconstructs the status implied by the ledger.
func CurrentStatusFromHistory(history []TransitionRecord) (ApplicationStatus, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Corrected {
			return history[i].NextStatus, true
		}
	}
	return "", false
}

// HasTransition reports whether a non-corrected entry moved prev → next. A nil prev
// matches the creation record.
func HasTransition(history []TransitionRecord, prev *ApplicationStatus, next ApplicationStatus) bool {
	for _, rec := range history {
		if rec.Corrected || rec.NextStatus != next {
			continue
		}
		if prev == nil && rec.PrevStatus == nil {
			return true
		}
		if prev != nil && rec.PrevStatus != nil && *prev == *rec.PrevStatus {
			return true
		}
	}
	return false
}

// CorrectionCommand appends an annotating ledger entry without moving the status.
// NextStatus, with PrevStatus (nil for the creation record), names the earlier transition
// being corrected. When NextStatus is nil the entry annotates the current status.
type CorrectionCommand struct {
	ApplicationID string
	Actor         Actor
	Note          string
	PrevStatus    *ApplicationStatus
	NextStatus    *ApplicationStatus
}
