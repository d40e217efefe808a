package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caseflowhq/caseflow/internal/models"
)

// CaseStore provides data access for cases and case membership.
type CaseStore struct {
	Base
}

// NewCaseStore creates a CaseStore.
func NewCaseStore(base Base) *CaseStore {
	return &CaseStore{Base: base}
}

const caseColumns = `id, title, client_name, status, description, created_by, deleted_at, created_at, updated_at`

// CreateCase opens a new case and adds the creator as its first member.
func (s *CaseStore) CreateCase(ctx context.Context, actor models.Actor, req models.CreateCaseRequest) (*models.Case, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	row := tx.QueryRow(ctx, `
		INSERT INTO cases (id, title, client_name, description, status, created_by)
		VALUES ($1, $2, $3, $4, 'open', $5)
		RETURNING `+caseColumns,
		req.ID, req.Title, req.ClientName, req.Description, actor.UserID,
	)

	c, err := scanCase(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting case: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO case_members (case_id, user_id) VALUES ($1, $2)`,
		c.ID, actor.UserID,
	); err != nil {
		return nil, fmt.Errorf("adding creator membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// GetCase returns a live case by ID.
func (s *CaseStore) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+caseColumns+` FROM cases WHERE id = $1 AND deleted_at IS NULL`,
		caseID,
	)

	c, err := scanCase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching case: %w", err)
	}

	return c, nil
}

// ListCases returns live cases, newest-first.
func (s *CaseStore) ListCases(ctx context.Context, limit, offset int) ([]models.Case, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit)

	rows, err := s.Pool.Query(ctx,
		`SELECT `+caseColumns+` FROM cases
		 WHERE deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var cases []models.Case

	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scanning case: %w", err)
		}
		cases = append(cases, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating cases: %w", err)
	}

	hasMore := len(cases) > limit
	if hasMore {
		cases = cases[:limit]
	}

	return cases, hasMore, nil
}

// AddMember adds a user to a case.
func (s *CaseStore) AddMember(ctx context.Context, actor models.Actor, caseID, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	if _, err := tx.Exec(ctx,
		`INSERT INTO case_members (case_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (case_id, user_id) DO NOTHING`,
		caseID, userID,
	); err != nil {
		return fmt.Errorf("adding case member: %w", err)
	}

	return tx.Commit(ctx)
}

// RemoveMember removes a user from a case.
func (s *CaseStore) RemoveMember(ctx context.Context, actor models.Actor, caseID, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	if _, err := tx.Exec(ctx,
		`DELETE FROM case_members WHERE case_id = $1 AND user_id = $2`,
		caseID, userID,
	); err != nil {
		return fmt.Errorf("removing case member: %w", err)
	}

	return tx.Commit(ctx)
}

// IsMember reports whether the user belongs to the case.
func (s *CaseStore) IsMember(ctx context.Context, caseID, userID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool

	err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM case_members WHERE case_id = $1 AND user_id = $2)`,
		caseID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking case membership: %w", err)
	}

	return exists, nil
}

func scanCase(row pgx.Row) (*models.Case, error) {
	var c models.Case

	err := row.Scan(
		&c.ID, &c.Title, &c.ClientName, &c.Status, &c.Description,
		&c.CreatedBy, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
