package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// TimeEntryStore provides data access for billable time entries.
type TimeEntryStore struct {
	Base
}

// NewTimeEntryStore creates a TimeEntryStore.
func NewTimeEntryStore(base Base) *TimeEntryStore {
	return &TimeEntryStore{Base: base}
}

const timeEntryColumns = `id, case_id, user_id, description, minutes, worked_on,
	deleted_at, created_at, updated_at`

// CreateTimeEntry logs time against a case.
func (s *TimeEntryStore) CreateTimeEntry(
	ctx context.Context, actor models.Actor, caseID string, req models.CreateTimeEntryRequest,
) (*models.TimeEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	row := tx.QueryRow(ctx, `
		INSERT INTO time_entries (id, case_id, user_id, description, minutes, worked_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+timeEntryColumns,
		req.ID, caseID, actor.UserID, req.Description, req.Minutes, req.WorkedOn,
	)

	entry, err := scanTimeEntry(row)
	if err != nil {
		return nil, fmt.Errorf("inserting time entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetTimeEntry returns a live time entry scoped to its case.
func (s *TimeEntryStore) GetTimeEntry(ctx context.Context, caseID, entryID string) (*models.TimeEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries
		 WHERE id = $1 AND case_id = $2 AND deleted_at IS NULL`,
		entryID, caseID,
	)

	entry, err := scanTimeEntry(row)
	if err != nil {
		return nil, mapNoRows(err, models.ErrTimeEntryNotFound)
	}

	return entry, nil
}

// ListTimeEntries returns live time entries for a case, newest-first.
func (s *TimeEntryStore) ListTimeEntries(ctx context.Context, caseID string, limit, offset int) ([]models.TimeEntry, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit)

	rows, err := s.Pool.Query(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries
		 WHERE case_id = $1 AND deleted_at IS NULL
		 ORDER BY worked_on DESC LIMIT $2 OFFSET $3`,
		caseID, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []models.TimeEntry

	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scanning time entry: %w", err)
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating time entries: %w", err)
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}

// PatchTimeEntry applies an allow-listed field map to a live time entry.
func (s *TimeEntryStore) PatchTimeEntry(
	ctx context.Context, actor models.Actor, caseID, entryID string, fields map[string]any,
) (*models.TimeEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, tx, err := s.patchRow(ctx, actor, "time_entries", entryID, caseID, fields, timeEntryColumns)
	if err != nil {
		return nil, err
	}

	return finishPatch(ctx, rows, tx, scanTimeEntry, models.ErrTimeEntryNotFound)
}

// DeletionTarget builds the tiered-deletion adapter for a time entry.
func (s *TimeEntryStore) DeletionTarget(actor models.Actor, caseID, entryID string) deletion.Target {
	return NewDeletionTarget(s.Base, actor, "time_entries", entryID, caseID, "")
}

func scanTimeEntry(row pgx.Row) (*models.TimeEntry, error) {
	var (
		e           models.TimeEntry
		description *string
	)

	err := row.Scan(
		&e.ID, &e.CaseID, &e.UserID, &description, &e.Minutes, &e.WorkedOn,
		&e.DeletedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		e.Description = *description
	}

	return &e, nil
}
