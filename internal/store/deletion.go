package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// softDeleteProcs maps each soft-deletable table to its stored procedure.
// Table and procedure names are compile-time constants; they are interpolated
// into SQL, so nothing here may ever come from a request.
var softDeleteProcs = map[string]string{
	"documents":    "soft_delete_document",
	"tasks":        "soft_delete_task",
	"notes":        "soft_delete_note",
	"time_entries": "soft_delete_time_entry",
}

// Compile-time check: *DeletionTarget must satisfy deletion.Target.
var _ deletion.Target = (*DeletionTarget)(nil)

// DeletionTarget adapts one row of a soft-deletable table to the deletion
// engine. A target is bound to a single (table, id, case scope) triple; scope
// and authorization checks happen before the target is built.
type DeletionTarget struct {
	base     Base
	actor    models.Actor
	table    string
	proc     string
	id       string
	caseID   string // empty when the table is not case-scoped
	blobPath string
}

// NewDeletionTarget builds a target for a tracked table. Panics on an unknown
// table: the registry is fixed at compile time, so a miss is a programming error.
func NewDeletionTarget(base Base, actor models.Actor, table, id, caseID, blobPath string) *DeletionTarget {
	proc, ok := softDeleteProcs[table]
	if !ok {
		panic(fmt.Sprintf("store: no soft-delete procedure registered for table %q", table))
	}

	return &DeletionTarget{
		base:     base,
		actor:    actor,
		table:    table,
		proc:     proc,
		id:       id,
		caseID:   caseID,
		blobPath: blobPath,
	}
}

// SoftDelete invokes the table's stored procedure. Succeeds only on a nil
// error and a true result.
func (t *DeletionTarget) SoftDelete(ctx context.Context) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := t.base.beginTx(ctx, t.actor)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	var ok bool
	if err := tx.QueryRow(ctx, fmt.Sprintf("SELECT %s($1)", t.proc), t.id).Scan(&ok); err != nil {
		return false, fmt.Errorf("calling %s: %w", t.proc, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return ok, nil
}

// MarkDeleted sets deleted_at directly. The deleted_at IS NULL guard keeps a
// concurrent second deletion from reporting success for work it never did,
// and the rows-affected count is the tier's success signal: an UPDATE that
// finds no live row (guard miss, or a policy hiding the row) returns zero
// rows with no error, and must not read as a deletion.
func (t *DeletionTarget) MarkDeleted(ctx context.Context) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := t.base.beginTx(ctx, t.actor)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	sql := fmt.Sprintf("UPDATE %s SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL", t.table)
	args := []any{t.id}

	if t.caseID != "" {
		sql += " AND case_id = $2"
		args = append(args, t.caseID)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("marking %s row deleted: %w", t.table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// HardDelete physically removes the row.
func (t *DeletionTarget) HardDelete(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := t.base.beginTx(ctx, t.actor)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.table)
	args := []any{t.id}

	if t.caseID != "" {
		sql += " AND case_id = $2"
		args = append(args, t.caseID)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("hard deleting %s row: %w", t.table, err)
	}

	return tx.Commit(ctx)
}

// Check re-fetches the row without the live-rows filter so verification can
// distinguish gone, soft-deleted, and still-live.
func (t *DeletionTarget) Check(ctx context.Context) (deletion.State, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf("SELECT deleted_at IS NOT NULL FROM %s WHERE id = $1", t.table)

	var deleted bool

	err := t.base.Pool.QueryRow(ctx, sql, t.id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return deletion.State{Exists: false}, nil
	}
	if err != nil {
		return deletion.State{}, fmt.Errorf("verifying %s row: %w", t.table, err)
	}

	return deletion.State{Exists: true, Deleted: deleted}, nil
}

// BlobPath returns the stored-file reference bound at construction.
func (t *DeletionTarget) BlobPath() string { return t.blobPath }
