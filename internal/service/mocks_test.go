package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func testUser(role models.Role) *models.User {
	return &models.User{ID: "u1", Email: "ana@firm.test", Name: "Ana", Role: role}
}

// mockDeleter records targets and returns a canned result.
type mockDeleter struct {
	mu      sync.Mutex
	targets []deletion.Target
	result  deletion.Result
}

func (m *mockDeleter) Delete(_ context.Context, target deletion.Target) deletion.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets = append(m.targets, target)
	return m.result
}

func (m *mockDeleter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.targets)
}

// noopTarget satisfies deletion.Target for wiring tests.
type noopTarget struct{}

func (noopTarget) SoftDelete(context.Context) (bool, error)    { return true, nil }
func (noopTarget) MarkDeleted(context.Context) (bool, error)   { return true, nil }
func (noopTarget) HardDelete(context.Context) error            { return nil }
func (noopTarget) Check(context.Context) (deletion.State, error) {
	return deletion.State{Exists: true, Deleted: true}, nil
}
func (noopTarget) BlobPath() string { return "" }

type mockMembers struct {
	isMember func(ctx context.Context, caseID, userID string) (bool, error)
}

func (m *mockMembers) IsMember(ctx context.Context, caseID, userID string) (bool, error) {
	if m.isMember != nil {
		return m.isMember(ctx, caseID, userID)
	}
	return false, nil
}

type mockDocumentStore struct {
	createDocument func(ctx context.Context, actor models.Actor, caseID string, req models.CreateDocumentRequest) (*models.Document, error)
	getDocument    func(ctx context.Context, caseID, docID string) (*models.Document, error)
	listDocuments  func(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error)
	patchDocument  func(ctx context.Context, actor models.Actor, caseID, docID string, fields map[string]any) (*models.Document, error)
}

func (m *mockDocumentStore) CreateDocument(ctx context.Context, actor models.Actor, caseID string, req models.CreateDocumentRequest) (*models.Document, error) {
	return m.createDocument(ctx, actor, caseID, req)
}

func (m *mockDocumentStore) GetDocument(ctx context.Context, caseID, docID string) (*models.Document, error) {
	return m.getDocument(ctx, caseID, docID)
}

func (m *mockDocumentStore) ListDocuments(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error) {
	return m.listDocuments(ctx, caseID, limit, offset)
}

func (m *mockDocumentStore) PatchDocument(ctx context.Context, actor models.Actor, caseID, docID string, fields map[string]any) (*models.Document, error) {
	return m.patchDocument(ctx, actor, caseID, docID, fields)
}

func (m *mockDocumentStore) DeletionTarget(models.Actor, string, *models.Document) deletion.Target {
	return noopTarget{}
}

type mockCaseStore struct {
	createCase   func(ctx context.Context, actor models.Actor, req models.CreateCaseRequest) (*models.Case, error)
	getCase      func(ctx context.Context, caseID string) (*models.Case, error)
	listCases    func(ctx context.Context, limit, offset int) ([]models.Case, bool, error)
	addMember    func(ctx context.Context, actor models.Actor, caseID, userID string) error
	removeMember func(ctx context.Context, actor models.Actor, caseID, userID string) error
	isMember     func(ctx context.Context, caseID, userID string) (bool, error)
}

func (m *mockCaseStore) CreateCase(ctx context.Context, actor models.Actor, req models.CreateCaseRequest) (*models.Case, error) {
	return m.createCase(ctx, actor, req)
}

func (m *mockCaseStore) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	return m.getCase(ctx, caseID)
}

func (m *mockCaseStore) ListCases(ctx context.Context, limit, offset int) ([]models.Case, bool, error) {
	return m.listCases(ctx, limit, offset)
}

func (m *mockCaseStore) AddMember(ctx context.Context, actor models.Actor, caseID, userID string) error {
	return m.addMember(ctx, actor, caseID, userID)
}

func (m *mockCaseStore) RemoveMember(ctx context.Context, actor models.Actor, caseID, userID string) error {
	return m.removeMember(ctx, actor, caseID, userID)
}

func (m *mockCaseStore) IsMember(ctx context.Context, caseID, userID string) (bool, error) {
	if m.isMember != nil {
		return m.isMember(ctx, caseID, userID)
	}
	return false, nil
}

type mockNoteStore struct {
	createNote func(ctx context.Context, actor models.Actor, caseID string, req models.CreateNoteRequest) (*models.Note, error)
	getNote    func(ctx context.Context, caseID, noteID string) (*models.Note, error)
	listNotes  func(ctx context.Context, caseID string, limit, offset int) ([]models.Note, bool, error)
	patchNote  func(ctx context.Context, actor models.Actor, caseID, noteID string, fields map[string]any) (*models.Note, error)
}

func (m *mockNoteStore) CreateNote(ctx context.Context, actor models.Actor, caseID string, req models.CreateNoteRequest) (*models.Note, error) {
	return m.createNote(ctx, actor, caseID, req)
}

func (m *mockNoteStore) GetNote(ctx context.Context, caseID, noteID string) (*models.Note, error) {
	return m.getNote(ctx, caseID, noteID)
}

func (m *mockNoteStore) ListNotes(ctx context.Context, caseID string, limit, offset int) ([]models.Note, bool, error) {
	return m.listNotes(ctx, caseID, limit, offset)
}

func (m *mockNoteStore) PatchNote(ctx context.Context, actor models.Actor, caseID, noteID string, fields map[string]any) (*models.Note, error) {
	return m.patchNote(ctx, actor, caseID, noteID, fields)
}

func (m *mockNoteStore) DeletionTarget(models.Actor, string, string) deletion.Target {
	return noopTarget{}
}

type mockAuditStore struct {
	queryAudit func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
	listChain  func(ctx context.Context) ([]models.AuditRecord, error)
}

func (m *mockAuditStore) QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error) {
	return m.queryAudit(ctx, opts)
}

func (m *mockAuditStore) ListChain(ctx context.Context) ([]models.AuditRecord, error) {
	return m.listChain(ctx)
}

type mockUsers struct {
	getUser func(ctx context.Context, userID string) (*models.User, error)
}

func (m *mockUsers) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return m.getUser(ctx, userID)
}
