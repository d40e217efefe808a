package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is free-form text attached to a case. Notes created via the chat
// webhook carry the originating channel in Source.
type Note struct {
	ID        string     `json:"id"`
	CaseID    string     `json:"case_id"`
	Content   string     `json:"content"`
	Source    string     `json:"source,omitempty"`
	CreatedBy string     `json:"created_by"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateNoteRequest is the payload for creating a note.
type CreateNoteRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// Validate checks required fields on CreateNoteRequest.
func (r *CreateNoteRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if r.Content == "" {
		return ErrMissingContent
	}

	if len(r.Content) > 65536 {
		return ErrFieldTooLong("content", 65536)
	}

	return nil
}

var notePatchFields = map[string]bool{
	"content": true,
}

// FilterNotePatch returns only the allow-listed fields of a raw patch.
func FilterNotePatch(patch map[string]any) map[string]any {
	return filterPatch(patch, notePatchFields)
}
