package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// DocumentStore provides data access for case documents.
type DocumentStore struct {
	Base
}

// NewDocumentStore creates a DocumentStore.
func NewDocumentStore(base Base) *DocumentStore {
	return &DocumentStore{Base: base}
}

const documentColumns = `id, case_id, title, file_path, file_size, mime_type,
	uploaded_by, deleted_at, created_at, updated_at`

// CreateDocument registers an uploaded document under a case.
func (s *DocumentStore) CreateDocument(
	ctx context.Context, actor models.Actor, caseID string, req models.CreateDocumentRequest,
) (*models.Document, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	row := tx.QueryRow(ctx, `
		INSERT INTO documents (id, case_id, title, file_path, file_size, mime_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+documentColumns,
		req.ID, caseID, req.Title, req.FilePath, req.FileSize, req.MimeType, actor.UserID,
	)

	doc, err := scanDocument(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting document: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return doc, nil
}

// GetDocument returns a live document scoped to its case. An id that exists
// under a different case is not found, not forbidden.
func (s *DocumentStore) GetDocument(ctx context.Context, caseID, docID string) (*models.Document, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE id = $1 AND case_id = $2 AND deleted_at IS NULL`,
		docID, caseID,
	)

	doc, err := scanDocument(row)
	if err != nil {
		return nil, mapNoRows(err, models.ErrDocumentNotFound)
	}

	return doc, nil
}

// ListDocuments returns live documents for a case, newest-first.
func (s *DocumentStore) ListDocuments(ctx context.Context, caseID string, limit, offset int) ([]models.Document, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit)

	rows, err := s.Pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE case_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		caseID, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document

	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating documents: %w", err)
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}

	return docs, hasMore, nil
}

// PatchDocument applies an allow-listed field map to a live document.
func (s *DocumentStore) PatchDocument(
	ctx context.Context, actor models.Actor, caseID, docID string, fields map[string]any,
) (*models.Document, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, tx, err := s.patchRow(ctx, actor, "documents", docID, caseID, fields, documentColumns)
	if err != nil {
		return nil, err
	}

	return finishPatch(ctx, rows, tx, scanDocument, models.ErrDocumentNotFound)
}

// DeletionTarget builds the tiered-deletion adapter for a document.
func (s *DocumentStore) DeletionTarget(actor models.Actor, caseID string, doc *models.Document) deletion.Target {
	return NewDeletionTarget(s.Base, actor, "documents", doc.ID, caseID, doc.FilePath)
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var (
		d        models.Document
		filePath *string
		mimeType *string
		fileSize *int64
	)

	err := row.Scan(
		&d.ID, &d.CaseID, &d.Title, &filePath, &fileSize, &mimeType,
		&d.UploadedBy, &d.DeletedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if filePath != nil {
		d.FilePath = *filePath
	}
	if fileSize != nil {
		d.FileSize = *fileSize
	}
	if mimeType != nil {
		d.MimeType = *mimeType
	}

	return &d, nil
}
