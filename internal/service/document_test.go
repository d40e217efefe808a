package service

import (
	"context"
	"errors"
	"testing"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

func TestDocumentService_DeleteDocument_NotFound(t *testing.T) {
	store := &mockDocumentStore{
		getDocument: func(_ context.Context, _, _ string) (*models.Document, error) {
			return nil, models.ErrDocumentNotFound
		},
	}
	deleter := &mockDeleter{}
	svc := NewDocumentService(store, &mockMembers{}, deleter, testLogger())

	_, err := svc.DeleteDocument(context.Background(), testUser(models.RoleStaff), "c1", "d1")
	if !errors.Is(err, models.ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
	if deleter.calls() != 0 {
		t.Error("deletion pipeline ran for a missing document")
	}
}

func TestDocumentService_DeleteDocument_Forbidden(t *testing.T) {
	store := &mockDocumentStore{
		getDocument: func(_ context.Context, _, _ string) (*models.Document, error) {
			return &models.Document{ID: "d1", CaseID: "c1", UploadedBy: "someone-else"}, nil
		},
	}
	members := &mockMembers{
		isMember: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
	}
	deleter := &mockDeleter{}
	svc := NewDocumentService(store, members, deleter, testLogger())

	_, err := svc.DeleteDocument(context.Background(), testUser(models.RoleStaff), "c1", "d1")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if deleter.calls() != 0 {
		t.Error("deletion pipeline ran for a forbidden caller")
	}
}

func TestDocumentService_DeleteDocument_Authorization(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		uploadedBy string
		member     bool
		want       bool
	}{
		{name: "admin may delete anything", role: models.RoleAdmin, uploadedBy: "other", want: true},
		{name: "lawyer may delete anything", role: models.RoleLawyer, uploadedBy: "other", want: true},
		{name: "staff creator may delete own", role: models.RoleStaff, uploadedBy: "u1", want: true},
		{name: "staff member may delete", role: models.RoleStaff, uploadedBy: "other", member: true, want: true},
		{name: "staff outsider may not", role: models.RoleStaff, uploadedBy: "other", want: false},
		{name: "paralegal outsider may not", role: models.RoleParalegal, uploadedBy: "other", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockDocumentStore{
				getDocument: func(_ context.Context, _, _ string) (*models.Document, error) {
					return &models.Document{ID: "d1", CaseID: "c1", UploadedBy: tc.uploadedBy}, nil
				},
			}
			members := &mockMembers{
				isMember: func(_ context.Context, _, _ string) (bool, error) { return tc.member, nil },
			}
			deleter := &mockDeleter{result: deletion.Result{
				Outcome: deletion.OutcomeSoftDelete, Method: deletion.MethodSoftDeleteProc,
			}}
			svc := NewDocumentService(store, members, deleter, testLogger())

			res, err := svc.DeleteDocument(context.Background(), testUser(tc.role), "c1", "d1")

			if tc.want {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if res.Method != deletion.MethodSoftDeleteProc {
					t.Errorf("method = %s, want soft_delete", res.Method)
				}
				if deleter.calls() != 1 {
					t.Errorf("deleter calls = %d, want 1", deleter.calls())
				}
				return
			}

			if !errors.Is(err, models.ErrForbidden) {
				t.Fatalf("err = %v, want ErrForbidden", err)
			}
		})
	}
}

func TestDocumentService_DeleteDocument_TerminalFailurePassedThrough(t *testing.T) {
	store := &mockDocumentStore{
		getDocument: func(_ context.Context, _, _ string) (*models.Document, error) {
			return &models.Document{ID: "d1", CaseID: "c1", UploadedBy: "u1"}, nil
		},
	}
	deleter := &mockDeleter{result: deletion.Result{Outcome: deletion.OutcomeFailure}}
	svc := NewDocumentService(store, &mockMembers{}, deleter, testLogger())

	res, err := svc.DeleteDocument(context.Background(), testUser(models.RoleAdmin), "c1", "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success() {
		t.Error("terminal failure reported as success")
	}
}

func TestDocumentService_PatchDocument_FiltersFields(t *testing.T) {
	var gotFields map[string]any
	store := &mockDocumentStore{
		patchDocument: func(_ context.Context, _ models.Actor, _, _ string, fields map[string]any) (*models.Document, error) {
			gotFields = fields
			return &models.Document{ID: "d1", Title: "Renamed"}, nil
		},
	}
	svc := NewDocumentService(store, &mockMembers{}, &mockDeleter{}, testLogger())

	_, err := svc.PatchDocument(context.Background(), testUser(models.RoleLawyer), "c1", "d1", map[string]any{
		"title":      "Renamed",
		"deleted_at": "2026-01-01T00:00:00Z",
		"id":         "d2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotFields) != 1 || gotFields["title"] != "Renamed" {
		t.Errorf("fields = %v, want only title", gotFields)
	}
}

func TestDocumentService_PatchDocument_NoRecognizedFields(t *testing.T) {
	store := &mockDocumentStore{
		getDocument: func(_ context.Context, _, docID string) (*models.Document, error) {
			return &models.Document{ID: docID, Title: "Unchanged"}, nil
		},
		patchDocument: func(_ context.Context, _ models.Actor, _, _ string, _ map[string]any) (*models.Document, error) {
			t.Fatal("patch must not reach the store when nothing survives filtering")
			return nil, nil
		},
	}
	svc := NewDocumentService(store, &mockMembers{}, &mockDeleter{}, testLogger())

	doc, err := svc.PatchDocument(context.Background(), testUser(models.RoleLawyer), "c1", "d1", map[string]any{
		"deleted_at": "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Unchanged" {
		t.Errorf("title = %q, want current row back", doc.Title)
	}
}

func TestDocumentService_CreateDocument_Validates(t *testing.T) {
	store := &mockDocumentStore{
		createDocument: func(_ context.Context, actor models.Actor, _ string, req models.CreateDocumentRequest) (*models.Document, error) {
			return &models.Document{ID: req.ID, Title: req.Title, UploadedBy: actor.UserID}, nil
		},
	}
	svc := NewDocumentService(store, &mockMembers{}, &mockDeleter{}, testLogger())

	if _, err := svc.CreateDocument(context.Background(), testUser(models.RoleLawyer), "c1", models.CreateDocumentRequest{}); err == nil {
		t.Error("expected validation error for missing title")
	}

	doc, err := svc.CreateDocument(context.Background(), testUser(models.RoleLawyer), "c1", models.CreateDocumentRequest{Title: "Brief"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID == "" {
		t.Error("expected generated id")
	}
	if doc.UploadedBy != "u1" {
		t.Errorf("uploaded_by = %q, want acting user", doc.UploadedBy)
	}
}
