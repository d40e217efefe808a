package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeEntry records billable time against a case.
type TimeEntry struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"case_id"`
	UserID      string     `json:"user_id"`
	Description string     `json:"description"`
	Minutes     int        `json:"minutes"`
	WorkedOn    time.Time  `json:"worked_on"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTimeEntryRequest is the payload for logging time.
type CreateTimeEntryRequest struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Minutes     int       `json:"minutes"`
	WorkedOn    time.Time `json:"worked_on"`
}

// Validate checks required fields on CreateTimeEntryRequest.
func (r *CreateTimeEntryRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if r.Minutes <= 0 || r.Minutes > 24*60 {
		return fmt.Errorf("minutes must be between 1 and %d", 24*60)
	}

	if len(r.Description) > 2000 {
		return ErrFieldTooLong("description", 2000)
	}

	if r.WorkedOn.IsZero() {
		r.WorkedOn = time.Now().UTC()
	}

	return nil
}

var timeEntryPatchFields = map[string]bool{
	"description": true,
	"minutes":     true,
	"worked_on":   true,
}

// FilterTimeEntryPatch returns only the allow-listed fields of a raw patch.
func FilterTimeEntryPatch(patch map[string]any) map[string]any {
	return filterPatch(patch, timeEntryPatchFields)
}
