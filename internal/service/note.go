package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// NoteStore is the data-access interface NoteService depends on.
type NoteStore interface {
	CreateNote(ctx context.Context, actor models.Actor, caseID string, req models.CreateNoteRequest) (*models.Note, error)
	GetNote(ctx context.Context, caseID, noteID string) (*models.Note, error)
	ListNotes(ctx context.Context, caseID string, limit, offset int) ([]models.Note, bool, error)
	PatchNote(ctx context.Context, actor models.Actor, caseID, noteID string, fields map[string]any) (*models.Note, error)
	DeletionTarget(actor models.Actor, caseID, noteID string) deletion.Target
}

// NoteService wraps NoteStore with validation, authorization, and tiered
// deletion.
type NoteService struct {
	store   NoteStore
	members MembershipChecker
	deleter Deleter
	log     *logrus.Logger
}

// NewNoteService creates a NoteService.
func NewNoteService(store NoteStore, members MembershipChecker, deleter Deleter, log *logrus.Logger) *NoteService {
	return &NoteService{store: store, members: members, deleter: deleter, log: log}
}

// CreateNote validates and creates a note.
func (s *NoteService) CreateNote(
	ctx context.Context, user *models.User, caseID string, req models.CreateNoteRequest,
) (*models.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateNote(ctx, models.ActorFor(user), caseID, req)
}

// GetNote returns a live note scoped to its case (pass-through).
func (s *NoteService) GetNote(ctx context.Context, caseID, noteID string) (*models.Note, error) {
	return s.store.GetNote(ctx, caseID, noteID)
}

// ListNotes returns a paginated list of live notes (pass-through).
func (s *NoteService) ListNotes(
	ctx context.Context, caseID string, limit, offset int,
) ([]models.Note, bool, error) {
	return s.store.ListNotes(ctx, caseID, limit, offset)
}

// PatchNote applies a partial update with unknown fields dropped.
func (s *NoteService) PatchNote(
	ctx context.Context, user *models.User, caseID, noteID string, patch map[string]any,
) (*models.Note, error) {
	fields := models.FilterNotePatch(patch)
	if len(fields) == 0 {
		return s.store.GetNote(ctx, caseID, noteID)
	}

	return s.store.PatchNote(ctx, models.ActorFor(user), caseID, noteID, fields)
}

// DeleteNote resolves the note, authorizes the caller, and runs the tiered
// deletion pipeline.
func (s *NoteService) DeleteNote(
	ctx context.Context, user *models.User, caseID, noteID string,
) (deletion.Result, error) {
	note, err := s.store.GetNote(ctx, caseID, noteID)
	if err != nil {
		return deletion.Result{}, err
	}

	ok, err := canDelete(ctx, s.members, user, caseID, note.CreatedBy)
	if err != nil {
		return deletion.Result{}, err
	}
	if !ok {
		return deletion.Result{}, models.ErrForbidden
	}

	target := s.store.DeletionTarget(models.ActorFor(user), caseID, noteID)

	return s.deleter.Delete(ctx, target), nil
}
