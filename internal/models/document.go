package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a file attached to a case. FilePath references the stored blob;
// the row is retained on soft delete but the blob is removed immediately.
type Document struct {
	ID         string     `json:"id"`
	CaseID     string     `json:"case_id"`
	Title      string     `json:"title"`
	FilePath   string     `json:"file_path,omitempty"`
	FileSize   int64      `json:"file_size,omitempty"`
	MimeType   string     `json:"mime_type,omitempty"`
	UploadedBy string     `json:"uploaded_by"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateDocumentRequest is the payload for registering an uploaded document.
type CreateDocumentRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FilePath string `json:"file_path,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// Validate checks required fields on CreateDocumentRequest.
func (r *CreateDocumentRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > 500 {
		return ErrFieldTooLong("title", 500)
	}

	if len(r.FilePath) > 1024 {
		return ErrFieldTooLong("file_path", 1024)
	}

	return nil
}

// documentPatchFields is the allow-list of document fields a PATCH may touch.
// Unknown fields are dropped, not rejected.
var documentPatchFields = map[string]bool{
	"title":     true,
	"mime_type": true,
}

// FilterDocumentPatch returns only the allow-listed fields of a raw patch.
func FilterDocumentPatch(patch map[string]any) map[string]any {
	return filterPatch(patch, documentPatchFields)
}
