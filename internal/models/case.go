// Package models defines data types for the case management service.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Case is the top-level matter that documents, tasks, notes, and time
// entries hang off.
type Case struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ClientName  string     `json:"client_name"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Description string     `json:"description,omitempty"`
}

// CaseMember links a user to a case. Membership is one of the qualifying
// relationships for deleting case-scoped resources.
type CaseMember struct {
	CaseID  string    `json:"case_id"`
	UserID  string    `json:"user_id"`
	AddedAt time.Time `json:"added_at"`
}

// CreateCaseRequest is the payload for opening a new case.
type CreateCaseRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ClientName  string `json:"client_name"`
	Description string `json:"description,omitempty"`
}

// Validate checks required fields on CreateCaseRequest.
// If ID is empty, a UUID is auto-generated.
func (r *CreateCaseRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("id must be a UUID: %w", err)
	}

	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > 500 {
		return ErrFieldTooLong("title", 500)
	}

	if len(r.ClientName) > 255 {
		return ErrFieldTooLong("client_name", 255)
	}

	return nil
}
