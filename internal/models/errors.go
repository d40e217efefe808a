package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingTitle   = errors.New("title is required")
	ErrMissingCaseID  = errors.New("case_id is required")
	ErrMissingContent = errors.New("content is required")
	ErrMissingName    = errors.New("name is required")
)

// Sentinel errors for entity lookups. A resource that exists but belongs to a
// different case is reported as not found, never as a permissions error.
var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrUserNotFound      = errors.New("user not found")
)

// ErrForbidden indicates the caller holds no qualifying role, ownership, or
// case membership for the attempted operation.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
