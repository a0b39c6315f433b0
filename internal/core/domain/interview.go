package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InterviewDateLayout = "2006-01-02"
	InterviewTimeLayout = "15:04"
)

// InterviewExpense is one cost line attached to an interview.
type InterviewExpense struct {
	Type       string          `json:"type"`
	Payer      string          `json:"payer"`
	Amount     decimal.Decimal `json:"amount"`
	Refundable bool            `json:"refundable"`
}

// InterviewDetails is the payload of schedule_interview and reschedule_interview.
type InterviewDetails struct {
	Date              string             `json:"date"` // YYYY-MM-DD
	Time              string             `json:"time"` // HH:MM
	Location          string             `json:"location"`
	ContactPerson     string             `json:"contact_person"`
	RequiredDocuments []string           `json:"required_documents,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	Expenses          []InterviewExpense `json:"expenses,omitempty"`
}

// Validate checks the mandatory interview fields and their formats.
func (d *InterviewDetails) Validate() error {
	if d == nil {
		return errors.New("interview details are required")
	}
	var missing []string
	if strings.TrimSpace(d.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(d.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(d.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(d.ContactPerson) == "" {
		missing = append(missing, "contact_person")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing interview fields: %s", strings.Join(missing, ", "))
	}
	if _, err := time.Parse(InterviewDateLayout, d.Date); err != nil {
		return fmt.Errorf("interview date %q must be YYYY-MM-DD", d.Date)
	}
	if _, err := time.Parse(InterviewTimeLayout, d.Time); err != nil {
		return fmt.Errorf("interview time %q must be HH:MM", d.Time)
	}
	for i, e := range d.Expenses {
		if strings.TrimSpace(e.Type) == "" {
			return fmt.Errorf("expense %d: type is required", i)
		}
		if e.Amount.IsNegative() {
			return fmt.Errorf("expense %d: amount must not be negative", i)
		}
	}
	return nil
}

// InterviewRecord is the single interview attached to an application.
// Schedule and reschedule overwrite it in place.
type InterviewRecord struct {
	ApplicationID string `json:"application_id"`
	InterviewDetails
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
