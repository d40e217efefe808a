package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/models"
)

// AuditStore provides read access to the audit_logs table. The table is
// written exclusively by the record_audit() trigger; this store never issues
// an INSERT, UPDATE, or DELETE against it.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

const auditColumns = `id, chain_pos, table_name, record_id, operation,
	actor_id, actor_email, actor_name, actor_role,
	old_data, new_data, changed_fields, data_hash, previous_hash, created_at`

// QueryAudit returns audit records matching the given filters, newest-first.
// Returns records, hasMore flag, and any error. No record is ever hidden
// based on the caller's role; visibility policy belongs to the layer above.
func (s *AuditStore) QueryAudit(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.AuditRecord, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit := clampLimit(opts.Limit)

	q := psql.Select(auditColumns).
		From("audit_logs").
		OrderBy("chain_pos DESC").
		Limit(uint64(limit + 1)).
		Offset(uint64(opts.Offset))

	if opts.TableName != "" {
		q = q.Where(sq.Eq{"table_name": opts.TableName})
	}
	if opts.RecordID != "" {
		q = q.Where(sq.Eq{"record_id": opts.RecordID})
	}
	if opts.Operation != "" {
		q = q.Where(sq.Eq{"operation": opts.Operation})
	}
	if opts.Since != nil {
		q = q.Where(sq.GtOrEq{"created_at": *opts.Since})
	}

	records, err := s.queryRecords(ctx, q)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	return records, hasMore, nil
}

// ListChain returns the full ledger in chain order. chain_pos is assigned
// under the same lock that selects previous_hash, so walking it ascending
// visits every record exactly in linkage order.
func (s *AuditStore) ListChain(ctx context.Context) ([]models.AuditRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := psql.Select(auditColumns).
		From("audit_logs").
		OrderBy("chain_pos ASC")

	return s.queryRecords(ctx, q)
}

// FetchRecent returns the most recent records across all tracked tables,
// newest-first, bounded by limit. Used by the timeline builder.
func (s *AuditStore) FetchRecent(ctx context.Context, limit int) ([]models.AuditRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := psql.Select(auditColumns).
		From("audit_logs").
		Where(sq.Eq{"table_name": models.TrackedTables}).
		OrderBy("chain_pos DESC").
		Limit(uint64(clampLimit(limit)))

	return s.queryRecords(ctx, q)
}

func (s *AuditStore) queryRecords(ctx context.Context, q sq.SelectBuilder) ([]models.AuditRecord, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building audit query: %w", err)
	}

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var records []models.AuditRecord

	for rows.Next() {
		r, err := scanAuditRow(rows, s.Log)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing audit query: %w", err)
	}

	return records, nil
}

// scanAuditRow scans one record, tolerating legacy changed_fields encodings.
func scanAuditRow(rows pgx.Rows, log interface{ Warnf(string, ...any) }) (models.AuditRecord, error) {
	var (
		r            models.AuditRecord
		oldJSON      []byte
		newJSON      []byte
		changedJSON  []byte
		actorEmail   *string
		actorName    *string
		previousHash *string
	)

	if err := rows.Scan(
		&r.ID, &r.ChainPos, &r.TableName, &r.RecordID, &r.Operation,
		&r.Actor.UserID, &actorEmail, &actorName, &r.Actor.Role,
		&oldJSON, &newJSON, &changedJSON, &r.DataHash, &previousHash, &r.CreatedAt,
	); err != nil {
		return r, fmt.Errorf("scanning audit row: %w", err)
	}

	if actorEmail != nil {
		r.Actor.Email = *actorEmail
	}
	if actorName != nil {
		r.Actor.Name = *actorName
	}
	if previousHash != nil {
		r.PreviousHash = *previousHash
	}

	if oldJSON != nil {
		if err := json.Unmarshal(oldJSON, &r.OldData); err != nil {
			log.Warnf("unparseable old_data on audit record %s: %v", r.ID, err)
		}
	}
	if newJSON != nil {
		if err := json.Unmarshal(newJSON, &r.NewData); err != nil {
			log.Warnf("unparseable new_data on audit record %s: %v", r.ID, err)
		}
	}
	if changedJSON != nil {
		// FieldList.UnmarshalJSON handles both jsonb arrays and legacy
		// JSON-encoded strings; it never fails.
		_ = r.ChangedFields.UnmarshalJSON(changedJSON)
	}

	return r, nil
}
