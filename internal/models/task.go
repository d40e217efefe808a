package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. "completed" is terminal and gets a dedicated timeline label.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task is a unit of work on a case.
type Task struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"case_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks required fields on CreateTaskRequest.
func (r *CreateTaskRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > 500 {
		return ErrFieldTooLong("title", 500)
	}

	return nil
}

var taskPatchFields = map[string]bool{
	"title":       true,
	"description": true,
	"status":      true,
	"assigned_to": true,
	"due_date":    true,
}

// FilterTaskPatch returns only the allow-listed fields of a raw patch.
func FilterTaskPatch(patch map[string]any) map[string]any {
	return filterPatch(patch, taskPatchFields)
}
