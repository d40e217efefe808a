package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// DocumentStore is the data-access interface DocumentService depends on.
type DocumentStore interface {
	CreateDocument(ctx context.Context, actor models.Actor, caseID string, req models.CreateDocumentRequest) (*models.Document, error)
	GetDocument(ctx context.Context, caseID, docID string) (*models.Document, error)
	ListDocuments(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error)
	PatchDocument(ctx context.Context, actor models.Actor, caseID, docID string, fields map[string]any) (*models.Document, error)
	DeletionTarget(actor models.Actor, caseID string, doc *models.Document) deletion.Target
}

// Deleter runs the tiered deletion pipeline for one target.
type Deleter interface {
	Delete(ctx context.Context, target deletion.Target) deletion.Result
}

// DocumentService wraps DocumentStore with validation, authorization, and
// tiered deletion.
type DocumentService struct {
	store   DocumentStore
	members MembershipChecker
	deleter Deleter
	log     *logrus.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(store DocumentStore, members MembershipChecker, deleter Deleter, log *logrus.Logger) *DocumentService {
	return &DocumentService{store: store, members: members, deleter: deleter, log: log}
}

// CreateDocument validates and registers an uploaded document.
func (s *DocumentService) CreateDocument(
	ctx context.Context, user *models.User, caseID string, req models.CreateDocumentRequest,
) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateDocument(ctx, models.ActorFor(user), caseID, req)
}

// GetDocument returns a live document scoped to its case (pass-through).
func (s *DocumentService) GetDocument(ctx context.Context, caseID, docID string) (*models.Document, error) {
	return s.store.GetDocument(ctx, caseID, docID)
}

// ListDocuments returns a paginated list of live documents (pass-through).
func (s *DocumentService) ListDocuments(
	ctx context.Context, caseID string, limit, offset int,
) ([]models.Document, bool, error) {
	return s.store.ListDocuments(ctx, caseID, limit, offset)
}

// PatchDocument applies a partial update. Unrecognized fields are silently
// dropped before the store sees them.
func (s *DocumentService) PatchDocument(
	ctx context.Context, user *models.User, caseID, docID string, patch map[string]any,
) (*models.Document, error) {
	fields := models.FilterDocumentPatch(patch)
	if len(fields) == 0 {
		return s.store.GetDocument(ctx, caseID, docID)
	}

	return s.store.PatchDocument(ctx, models.ActorFor(user), caseID, docID, fields)
}

// DeleteDocument resolves the document, authorizes the caller, and runs the
// tiered deletion pipeline. The resolve happens first so an unknown id is
// NotFound, not Forbidden.
func (s *DocumentService) DeleteDocument(
	ctx context.Context, user *models.User, caseID, docID string,
) (deletion.Result, error) {
	doc, err := s.store.GetDocument(ctx, caseID, docID)
	if err != nil {
		return deletion.Result{}, err
	}

	ok, err := canDelete(ctx, s.members, user, caseID, doc.UploadedBy)
	if err != nil {
		return deletion.Result{}, err
	}
	if !ok {
		return deletion.Result{}, models.ErrForbidden
	}

	target := s.store.DeletionTarget(models.ActorFor(user), caseID, doc)

	return s.deleter.Delete(ctx, target), nil
}
