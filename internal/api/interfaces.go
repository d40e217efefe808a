package api

import (
	"context"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/service"
	"github.com/caseflowhq/caseflow/internal/timeline"
)

// CaseService defines case operations used by CaseHandler.
type CaseService interface {
	CreateCase(ctx context.Context, user *models.User, req models.CreateCaseRequest) (*models.Case, error)
	GetCase(ctx context.Context, caseID string) (*models.Case, error)
	ListCases(ctx context.Context, limit, offset int) ([]models.Case, bool, error)
	AddMember(ctx context.Context, user *models.User, caseID, userID string) error
	RemoveMember(ctx context.Context, user *models.User, caseID, userID string) error
}

// DocumentService defines document operations used by DocumentHandler.
type DocumentService interface {
	CreateDocument(ctx context.Context, user *models.User, caseID string, req models.CreateDocumentRequest) (*models.Document, error)
	GetDocument(ctx context.Context, caseID, docID string) (*models.Document, error)
	ListDocuments(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error)
	PatchDocument(ctx context.Context, user *models.User, caseID, docID string, patch map[string]any) (*models.Document, error)
	DeleteDocument(ctx context.Context, user *models.User, caseID, docID string) (deletion.Result, error)
}

// TaskService defines task operations used by TaskHandler.
type TaskService interface {
	CreateTask(ctx context.Context, user *models.User, caseID string, req models.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, caseID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, caseID string, limit, offset int) ([]models.Task, bool, error)
	PatchTask(ctx context.Context, user *models.User, caseID, taskID string, patch map[string]any) (*models.Task, error)
	DeleteTask(ctx context.Context, user *models.User, caseID, taskID string) (deletion.Result, error)
}

// NoteService defines note operations used by NoteHandler.
type NoteService interface {
	CreateNote(ctx context.Context, user *models.User, caseID string, req models.CreateNoteRequest) (*models.Note, error)
	GetNote(ctx context.Context, caseID, noteID string) (*models.Note, error)
	ListNotes(ctx context.Context, caseID string, limit, offset int) ([]models.Note, bool, error)
	PatchNote(ctx context.Context, user *models.User, caseID, noteID string, patch map[string]any) (*models.Note, error)
	DeleteNote(ctx context.Context, user *models.User, caseID, noteID string) (deletion.Result, error)
}

// TimeEntryService defines time entry operations used by TimeEntryHandler.
type TimeEntryService interface {
	CreateTimeEntry(ctx context.Context, user *models.User, caseID string, req models.CreateTimeEntryRequest) (*models.TimeEntry, error)
	GetTimeEntry(ctx context.Context, caseID, entryID string) (*models.TimeEntry, error)
	ListTimeEntries(ctx context.Context, caseID string, limit, offset int) ([]models.TimeEntry, bool, error)
	PatchTimeEntry(ctx context.Context, user *models.User, caseID, entryID string, patch map[string]any) (*models.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, user *models.User, caseID, entryID string) (deletion.Result, error)
}

// AuditService defines ledger operations used by AuditHandler.
type AuditService interface {
	Query(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
	VerifyChain(ctx context.Context) (*models.VerifyResult, error)
}

// TimelineService defines timeline reconstruction used by TimelineHandler.
type TimelineService interface {
	BuildTimeline(ctx context.Context, caseID string) (*timeline.Result, error)
}

// WebhookService defines chat event intake used by WebhookHandler.
type WebhookService interface {
	HandleChatEvent(ctx context.Context, event service.ChatEvent) (*models.Note, error)
}
