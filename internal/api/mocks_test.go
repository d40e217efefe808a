package api_test

import (
	"context"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/service"
	"github.com/caseflowhq/caseflow/internal/timeline"
)

// mockCaseSvc implements api.CaseService for testing.
type mockCaseSvc struct {
	createFn       func(ctx context.Context, user *models.User, req models.CreateCaseRequest) (*models.Case, error)
	getFn          func(ctx context.Context, caseID string) (*models.Case, error)
	listFn         func(ctx context.Context, limit, offset int) ([]models.Case, bool, error)
	addMemberFn    func(ctx context.Context, user *models.User, caseID, userID string) error
	removeMemberFn func(ctx context.Context, user *models.User, caseID, userID string) error
}

func (m *mockCaseSvc) CreateCase(ctx context.Context, user *models.User, req models.CreateCaseRequest) (*models.Case, error) {
	return m.createFn(ctx, user, req)
}

func (m *mockCaseSvc) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	return m.getFn(ctx, caseID)
}

func (m *mockCaseSvc) ListCases(ctx context.Context, limit, offset int) ([]models.Case, bool, error) {
	return m.listFn(ctx, limit, offset)
}

func (m *mockCaseSvc) AddMember(ctx context.Context, user *models.User, caseID, userID string) error {
	return m.addMemberFn(ctx, user, caseID, userID)
}

func (m *mockCaseSvc) RemoveMember(ctx context.Context, user *models.User, caseID, userID string) error {
	return m.removeMemberFn(ctx, user, caseID, userID)
}

// mockDocumentSvc implements api.DocumentService for testing.
type mockDocumentSvc struct {
	createFn func(ctx context.Context, user *models.User, caseID string, req models.CreateDocumentRequest) (*models.Document, error)
	getFn    func(ctx context.Context, caseID, docID string) (*models.Document, error)
	listFn   func(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error)
	patchFn  func(ctx context.Context, user *models.User, caseID, docID string, patch map[string]any) (*models.Document, error)
	deleteFn func(ctx context.Context, user *models.User, caseID, docID string) (deletion.Result, error)
}

func (m *mockDocumentSvc) CreateDocument(ctx context.Context, user *models.User, caseID string, req models.CreateDocumentRequest) (*models.Document, error) {
	return m.createFn(ctx, user, caseID, req)
}

func (m *mockDocumentSvc) GetDocument(ctx context.Context, caseID, docID string) (*models.Document, error) {
	return m.getFn(ctx, caseID, docID)
}

func (m *mockDocumentSvc) ListDocuments(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error) {
	return m.listFn(ctx, caseID, limit, offset)
}

func (m *mockDocumentSvc) PatchDocument(ctx context.Context, user *models.User, caseID, docID string, patch map[string]any) (*models.Document, error) {
	return m.patchFn(ctx, user, caseID, docID, patch)
}

func (m *mockDocumentSvc) DeleteDocument(ctx context.Context, user *models.User, caseID, docID string) (deletion.Result, error) {
	return m.deleteFn(ctx, user, caseID, docID)
}

// mockAuditSvc implements api.AuditService for testing.
type mockAuditSvc struct {
	queryFn  func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
	verifyFn func(ctx context.Context) (*models.VerifyResult, error)
}

func (m *mockAuditSvc) Query(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error) {
	return m.queryFn(ctx, opts)
}

func (m *mockAuditSvc) VerifyChain(ctx context.Context) (*models.VerifyResult, error) {
	return m.verifyFn(ctx)
}

// mockTimelineSvc implements api.TimelineService for testing.
type mockTimelineSvc struct {
	buildFn func(ctx context.Context, caseID string) (*timeline.Result, error)
}

func (m *mockTimelineSvc) BuildTimeline(ctx context.Context, caseID string) (*timeline.Result, error) {
	return m.buildFn(ctx, caseID)
}

// mockWebhookSvc implements api.WebhookService for testing.
type mockWebhookSvc struct {
	handleFn func(ctx context.Context, event service.ChatEvent) (*models.Note, error)
}

func (m *mockWebhookSvc) HandleChatEvent(ctx context.Context, event service.ChatEvent) (*models.Note, error) {
	return m.handleFn(ctx, event)
}
