// Package deletion implements the tiered deletion protocol: an ordered
// pipeline of strategies (soft-delete procedure, guarded deleted_at update,
// hard delete) with post-verification and best-effort blob cleanup.
//
// Different deployments can leave the stored procedure missing or let a
// row-level security policy swallow updates without raising an error.
// Cascading through three independent mechanisms and verifying the end state
// is the only way the caller learns the true outcome instead of a false
// positive.
package deletion

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/metrics"
)

// Method identifies which deletion tier produced the outcome. It is reported
// on every response so operators can detect a deployment silently falling
// back to a weaker tier.
type Method string

const (
	MethodSoftDeleteProc  Method = "soft_delete"
	MethodUpdateDeletedAt Method = "update_deleted_at"
	MethodHardDelete      Method = "hard_delete"
)

// Outcome is the terminal state of a deletion request.
type Outcome string

const (
	// OutcomeSoftDelete: row retained with deleted_at set.
	OutcomeSoftDelete Outcome = "soft_delete"
	// OutcomeHardDelete: row physically removed.
	OutcomeHardDelete Outcome = "hard_delete"
	// OutcomeFailure: every tier ran and the row is still live. Distinct from
	// NotFound/Forbidden, which are rejected before any tier runs.
	OutcomeFailure Outcome = "failure"
)

// Result is the outcome of one deletion call. Warning carries non-fatal side
// effect failures (blob removal); it never downgrades a success.
type Result struct {
	Outcome Outcome
	Method  Method
	Warning string
}

// Success reports whether the deletion reached a deleted state.
func (r Result) Success() bool { return r.Outcome != OutcomeFailure }

// State is the post-verification view of the target row.
type State struct {
	Exists  bool
	Deleted bool
}

// Target is the per-resource surface the engine drives. Implementations are
// bound to a single (resource type, id, parent scope) triple; scope checks
// and authorization happen before the engine is invoked.
type Target interface {
	// SoftDelete invokes the resource's soft-delete stored procedure.
	// The tier succeeds only on a nil error and a truthy result.
	SoftDelete(ctx context.Context) (bool, error)

	// MarkDeleted sets deleted_at directly, guarded by deleted_at IS NULL so a
	// concurrent second call cannot mask a different failure. The tier
	// succeeds only when the statement reports no error AND touched a row: a
	// policy that hides the row from UPDATE yields zero rows without raising,
	// and that must read as a miss, not a success.
	MarkDeleted(ctx context.Context) (bool, error)

	// HardDelete physically removes the row.
	HardDelete(ctx context.Context) error

	// Check re-fetches the row without the live-rows filter, for
	// post-verification.
	Check(ctx context.Context) (State, error)

	// BlobPath returns the stored-file reference to clean up, or "" if the
	// resource carries none.
	BlobPath() string
}

// BlobRemover removes a stored file by path.
type BlobRemover interface {
	Remove(ctx context.Context, path string) error
}

// Engine runs the tiered pipeline. Safe for concurrent use.
type Engine struct {
	blobs BlobRemover
	log   *logrus.Logger
}

// NewEngine creates a deletion engine. blobs may be nil when no blob store is
// configured; cleanup is then skipped entirely.
func NewEngine(blobs BlobRemover, log *logrus.Logger) *Engine {
	return &Engine{blobs: blobs, log: log}
}

// step is one entry of the ordered strategy list. run returns whether the
// tier visibly succeeded; a non-nil error means the tier failed and the next
// one fires.
type step struct {
	method Method
	run    func(ctx context.Context) (bool, error)
}

// Delete drives the pipeline for one target. Tiers run strictly in order and
// each is fully resolved before the next begins: every guard condition
// depends on the previous tier's confirmed non-success.
func (e *Engine) Delete(ctx context.Context, target Target) Result {
	steps := []step{
		{MethodSoftDeleteProc, target.SoftDelete},
		{MethodUpdateDeletedAt, target.MarkDeleted},
	}

	for _, s := range steps {
		ok, err := s.run(ctx)
		if err != nil {
			e.log.WithError(err).WithField("method", string(s.method)).
				Warn("deletion tier failed, falling back")
			continue
		}
		if !ok {
			e.log.WithField("method", string(s.method)).
				Warn("deletion tier reported no effect, falling back")
			continue
		}

		return e.finish(ctx, target, Result{Outcome: OutcomeSoftDelete, Method: s.method})
	}

	// Last tier: genuine row delete. Its own error does not abort the call;
	// verification decides what actually happened.
	if err := target.HardDelete(ctx); err != nil {
		e.log.WithError(err).Warn("hard delete failed")
	}

	return e.verify(ctx, target)
}

// verify re-fetches the target after the hard-delete tier and classifies the
// terminal state.
func (e *Engine) verify(ctx context.Context, target Target) Result {
	state, err := target.Check(ctx)
	if err != nil {
		e.log.WithError(err).Error("post-deletion verification failed")

		return e.record(Result{
			Outcome: OutcomeFailure,
			Warning: "post-deletion verification failed: " + err.Error(),
		})
	}

	switch {
	case !state.Exists:
		return e.finish(ctx, target, Result{Outcome: OutcomeHardDelete, Method: MethodHardDelete})
	case state.Deleted:
		// A concurrent call won the soft-delete race; the row is gone from the
		// caller's perspective either way.
		return e.finish(ctx, target, Result{Outcome: OutcomeSoftDelete, Method: MethodUpdateDeletedAt})
	default:
		// Every strategy silently no-oped (e.g. a row-level security policy
		// blocked all three paths without raising an error).
		return e.record(Result{
			Outcome: OutcomeFailure,
			Warning: "every deletion strategy completed without error but the row is unchanged",
		})
	}
}

// finish runs blob cleanup exactly once per call for any successful outcome.
// Soft-deleted documents keep their row for the audit trail but lose the file
// bytes immediately; cleanup failure is a warning, never an operation failure.
func (e *Engine) finish(ctx context.Context, target Target, res Result) Result {
	path := target.BlobPath()
	if path != "" && e.blobs != nil {
		if err := e.blobs.Remove(ctx, path); err != nil {
			e.log.WithError(err).WithField("path", path).Warn("blob removal failed")
			res.Warning = "stored file could not be removed: " + err.Error()
		}
	}

	return e.record(res)
}

// record counts the outcome and returns it unchanged.
func (e *Engine) record(res Result) Result {
	label := string(res.Method)
	if res.Outcome == OutcomeFailure {
		label = "failure"
	}
	metrics.DeletionsTotal.WithLabelValues(label).Inc()

	return res
}
