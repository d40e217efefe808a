package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// NoteStore provides data access for case notes.
type NoteStore struct {
	Base
}

// NewNoteStore creates a NoteStore.
func NewNoteStore(base Base) *NoteStore {
	return &NoteStore{Base: base}
}

const noteColumns = `id, case_id, content, source, created_by, deleted_at, created_at, updated_at`

// CreateNote creates a note under a case.
func (s *NoteStore) CreateNote(
	ctx context.Context, actor models.Actor, caseID string, req models.CreateNoteRequest,
) (*models.Note, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	row := tx.QueryRow(ctx, `
		INSERT INTO notes (id, case_id, content, source, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+noteColumns,
		req.ID, caseID, req.Content, req.Source, actor.UserID,
	)

	note, err := scanNote(row)
	if err != nil {
		return nil, fmt.Errorf("inserting note: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return note, nil
}

// GetNote returns a live note scoped to its case.
func (s *NoteStore) GetNote(ctx context.Context, caseID, noteID string) (*models.Note, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE id = $1 AND case_id = $2 AND deleted_at IS NULL`,
		noteID, caseID,
	)

	note, err := scanNote(row)
	if err != nil {
		return nil, mapNoRows(err, models.ErrNoteNotFound)
	}

	return note, nil
}

// ListNotes returns live notes for a case, newest-first.
func (s *NoteStore) ListNotes(ctx context.Context, caseID string, limit, offset int) ([]models.Note, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit)

	rows, err := s.Pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE case_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		caseID, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note

	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating notes: %w", err)
	}

	hasMore := len(notes) > limit
	if hasMore {
		notes = notes[:limit]
	}

	return notes, hasMore, nil
}

// PatchNote applies an allow-listed field map to a live note.
func (s *NoteStore) PatchNote(
	ctx context.Context, actor models.Actor, caseID, noteID string, fields map[string]any,
) (*models.Note, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, tx, err := s.patchRow(ctx, actor, "notes", noteID, caseID, fields, noteColumns)
	if err != nil {
		return nil, err
	}

	return finishPatch(ctx, rows, tx, scanNote, models.ErrNoteNotFound)
}

// DeletionTarget builds the tiered-deletion adapter for a note.
func (s *NoteStore) DeletionTarget(actor models.Actor, caseID, noteID string) deletion.Target {
	return NewDeletionTarget(s.Base, actor, "notes", noteID, caseID, "")
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var (
		n      models.Note
		source *string
	)

	err := row.Scan(
		&n.ID, &n.CaseID, &n.Content, &source, &n.CreatedBy,
		&n.DeletedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if source != nil {
		n.Source = *source
	}

	return &n, nil
}
