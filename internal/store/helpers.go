package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/models"
)

// patchRow applies an already-allow-listed field map to one live row and
// returns a cursor over the updated row's columns. The deleted_at IS NULL and
// case-scope filters make a patch of a missing, soft-deleted, or
// wrong-parent row return zero rows.
func (b *Base) patchRow(
	ctx context.Context,
	actor models.Actor,
	table string,
	id, caseID string,
	fields map[string]any,
	returning string,
) (pgx.Rows, pgx.Tx, error) {
	q := psql.Update(table).
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + returning)

	if caseID != "" {
		q = q.Where(sq.Eq{"case_id": caseID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("building patch for %s: %w", table, err)
	}

	tx, err := b.beginTx(ctx, actor)
	if err != nil {
		return nil, nil, err
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on failure.

		return nil, nil, fmt.Errorf("patching %s row: %w", table, err)
	}

	return rows, tx, nil
}

// finishPatch scans the single returned row, committing on success. scan is
// called with the row cursor positioned on the updated row.
func finishPatch[T any](
	ctx context.Context,
	rows pgx.Rows,
	tx pgx.Tx,
	scan func(pgx.Row) (*T, error),
	notFound error,
) (*T, error) {
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}

		return nil, notFound
	}

	out, err := scan(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return out, nil
}

// mapNoRows converts pgx.ErrNoRows into a domain sentinel.
func mapNoRows(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}

	return err
}
