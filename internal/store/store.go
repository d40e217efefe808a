// Package store provides focused, single-concern data access stores for the
// case management service.
//
// Each store owns one domain (cases, documents, tasks, audit, ...) and embeds
// shared helpers (Pool, logger) via the Base struct. Stores never import each
// other; shared logic lives in this file or in dedicated helper files.
//
// Every mutating transaction sets the app.actor_* session settings before
// touching rows. The record_audit() trigger installed by the migrations reads
// those settings to denormalize the actor snapshot into the audit record.
package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/dbpool"
	"github.com/caseflowhq/caseflow/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// psql builds queries with Postgres $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// setActor stores the acting user in transaction-local settings so the audit
// trigger can snapshot identity and role at write time.
func setActor(ctx context.Context, tx pgx.Tx, actor models.Actor) error {
	_, err := tx.Exec(ctx, `
		SELECT set_config('app.actor_id', $1, true),
		       set_config('app.actor_email', $2, true),
		       set_config('app.actor_name', $3, true),
		       set_config('app.actor_role', $4, true)`,
		actor.UserID, actor.Email, actor.Name, actor.Role,
	)
	if err != nil {
		return fmt.Errorf("setting actor context: %w", err)
	}

	return nil
}

// beginTx starts a read-write transaction and sets the actor context.
func (b *Base) beginTx(ctx context.Context, actor models.Actor) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if err := setActor(ctx, tx, actor); err != nil {
		tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on setup failure.

		return nil, err
	}

	return tx, nil
}

// beginReadTx starts a read-only transaction. Reads carry no actor context;
// the audit trigger only fires on mutations.
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	return tx, nil
}

// maxListLimit caps list query sizes.
const maxListLimit = 500

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}

	if limit > maxListLimit {
		return maxListLimit
	}

	return limit
}
