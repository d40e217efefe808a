package deletion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	return l
}

// mockTarget implements deletion.Target with per-tier behavior knobs.
type mockTarget struct {
	softFn  func(ctx context.Context) (bool, error)
	markFn  func(ctx context.Context) (bool, error)
	hardFn  func(ctx context.Context) error
	checkFn func(ctx context.Context) (deletion.State, error)
	blob    string

	softCalls, markCalls, hardCalls, checkCalls int
}

func (m *mockTarget) SoftDelete(ctx context.Context) (bool, error) {
	m.softCalls++
	if m.softFn == nil {
		return false, errors.New("procedure missing")
	}
	return m.softFn(ctx)
}

func (m *mockTarget) MarkDeleted(ctx context.Context) (bool, error) {
	m.markCalls++
	if m.markFn == nil {
		return false, errors.New("update blocked")
	}
	return m.markFn(ctx)
}

func (m *mockTarget) HardDelete(ctx context.Context) error {
	m.hardCalls++
	if m.hardFn == nil {
		return errors.New("delete blocked")
	}
	return m.hardFn(ctx)
}

func (m *mockTarget) Check(ctx context.Context) (deletion.State, error) {
	m.checkCalls++
	if m.checkFn == nil {
		return deletion.State{}, errors.New("check failed")
	}
	return m.checkFn(ctx)
}

func (m *mockTarget) BlobPath() string { return m.blob }

// mockBlobs implements deletion.BlobRemover.
type mockBlobs struct {
	removed []string
	err     error
}

func (b *mockBlobs) Remove(_ context.Context, path string) error {
	b.removed = append(b.removed, path)

	return b.err
}

func TestDelete_ProcedureSucceeds(t *testing.T) {
	t.Parallel()

	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return true, nil },
	}
	blobs := &mockBlobs{}
	e := deletion.NewEngine(blobs, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeSoftDelete {
		t.Fatalf("expected soft_delete outcome, got %s", res.Outcome)
	}

	if res.Method != deletion.MethodSoftDeleteProc {
		t.Errorf("expected method soft_delete, got %s", res.Method)
	}

	if target.markCalls != 0 || target.hardCalls != 0 {
		t.Errorf("later tiers must not fire after success: mark=%d hard=%d", target.markCalls, target.hardCalls)
	}
}

func TestDelete_ProcedureFalsy_FallsBackToUpdate(t *testing.T) {
	t.Parallel()

	// The procedure returning a falsy result without an error must still count
	// as non-success.
	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return false, nil },
		markFn: func(context.Context) (bool, error) { return true, nil },
	}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeSoftDelete {
		t.Fatalf("expected soft_delete outcome, got %s", res.Outcome)
	}

	if res.Method != deletion.MethodUpdateDeletedAt {
		t.Errorf("expected method update_deleted_at, got %s", res.Method)
	}

	if target.hardCalls != 0 {
		t.Error("hard delete must not fire after update succeeds")
	}
}

func TestDelete_BothSoftTiersFail_HardDeleteVerified(t *testing.T) {
	t.Parallel()

	target := &mockTarget{
		hardFn:  func(context.Context) error { return nil },
		checkFn: func(context.Context) (deletion.State, error) { return deletion.State{Exists: false}, nil },
	}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeHardDelete {
		t.Fatalf("expected hard_delete outcome, got %s", res.Outcome)
	}

	if res.Method != deletion.MethodHardDelete {
		t.Errorf("expected method hard_delete, got %s", res.Method)
	}

	if target.checkCalls != 1 {
		t.Errorf("expected exactly one verification fetch, got %d", target.checkCalls)
	}
}

func TestDelete_AllTiersNoOp_TerminalFailure(t *testing.T) {
	t.Parallel()

	// Simulates a permission policy blocking all three paths without raising:
	// the row is still present and still live after the pipeline.
	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return false, nil },
		markFn: func(context.Context) (bool, error) { return false, nil },
		hardFn: func(context.Context) error { return nil },
		checkFn: func(context.Context) (deletion.State, error) {
			return deletion.State{Exists: true, Deleted: false}, nil
		},
	}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeFailure {
		t.Fatalf("expected failure outcome, got %s", res.Outcome)
	}

	if res.Success() {
		t.Error("failure outcome must not report success")
	}

	if res.Warning == "" {
		t.Error("terminal failure must carry an explicit warning")
	}

	if target.hardCalls != 1 || target.checkCalls != 1 {
		t.Errorf("silent no-ops must still reach hard delete and verification: hard=%d check=%d",
			target.hardCalls, target.checkCalls)
	}
}

func TestDelete_ZeroRowUpdate_FallsThroughToHardDelete(t *testing.T) {
	t.Parallel()

	// An UPDATE that matches no rows reports no error. The tier must read the
	// rows-affected count as a miss and hand off to the hard-delete tier
	// instead of claiming the row was soft-deleted.
	target := &mockTarget{
		softFn:  func(context.Context) (bool, error) { return false, nil },
		markFn:  func(context.Context) (bool, error) { return false, nil },
		hardFn:  func(context.Context) error { return nil },
		checkFn: func(context.Context) (deletion.State, error) { return deletion.State{Exists: false}, nil },
	}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeHardDelete {
		t.Fatalf("expected hard_delete outcome, got %s", res.Outcome)
	}

	if res.Method != deletion.MethodHardDelete {
		t.Errorf("expected method hard_delete, got %s", res.Method)
	}

	if target.checkCalls != 1 {
		t.Errorf("expected exactly one verification fetch, got %d", target.checkCalls)
	}
}

func TestDelete_RaceLoser_ClassifiedSoftDelete(t *testing.T) {
	t.Parallel()

	// A concurrent call already set deleted_at, so the guarded update matched
	// nothing here, yet verification finds the row soft-deleted. The loser is
	// reported as an idempotent success, never a partial modification.
	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return false, errors.New("procedure missing") },
		markFn: func(context.Context) (bool, error) { return false, nil },
		hardFn: func(context.Context) error { return errors.New("blocked") },
		checkFn: func(context.Context) (deletion.State, error) {
			return deletion.State{Exists: true, Deleted: true}, nil
		},
	}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeSoftDelete {
		t.Fatalf("expected soft_delete outcome, got %s", res.Outcome)
	}

	if res.Method != deletion.MethodUpdateDeletedAt {
		t.Errorf("expected method update_deleted_at, got %s", res.Method)
	}
}

func TestDelete_BlobRemovedOnceOnSoftDelete(t *testing.T) {
	t.Parallel()

	// Soft delete retains the row for the audit trail, not the file bytes:
	// the blob goes away immediately, exactly once.
	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return true, nil },
		blob:   "cases/c1/documents/d1.pdf",
	}
	blobs := &mockBlobs{}
	e := deletion.NewEngine(blobs, testLogger())

	res := e.Delete(context.Background(), target)

	if !res.Success() {
		t.Fatalf("expected success, got %s", res.Outcome)
	}

	if len(blobs.removed) != 1 || blobs.removed[0] != "cases/c1/documents/d1.pdf" {
		t.Fatalf("expected one blob removal, got %v", blobs.removed)
	}

	if res.Warning != "" {
		t.Errorf("unexpected warning: %s", res.Warning)
	}
}

func TestDelete_BlobFailureIsWarningOnly(t *testing.T) {
	t.Parallel()

	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return true, nil },
		blob:   "cases/c1/documents/d1.pdf",
	}
	blobs := &mockBlobs{err: errors.New("bucket unreachable")}
	e := deletion.NewEngine(blobs, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeSoftDelete {
		t.Fatalf("blob failure must not change the outcome, got %s", res.Outcome)
	}

	if res.Warning == "" {
		t.Error("expected a warning for the failed blob removal")
	}
}

func TestDelete_NoBlobStoreConfigured(t *testing.T) {
	t.Parallel()

	target := &mockTarget{
		softFn: func(context.Context) (bool, error) { return true, nil },
		blob:   "cases/c1/documents/d1.pdf",
	}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if !res.Success() || res.Warning != "" {
		t.Fatalf("nil blob store must skip cleanup silently: %+v", res)
	}
}

func TestDelete_TiersStrictlyOrdered(t *testing.T) {
	t.Parallel()

	var order []string
	target := &mockTarget{
		softFn: func(context.Context) (bool, error) {
			order = append(order, "proc")
			return false, errors.New("missing")
		},
		markFn: func(context.Context) (bool, error) {
			order = append(order, "update")
			return false, errors.New("blocked")
		},
		hardFn: func(context.Context) error {
			order = append(order, "hard")
			return nil
		},
		checkFn: func(context.Context) (deletion.State, error) {
			order = append(order, "verify")
			return deletion.State{Exists: false}, nil
		},
	}
	e := deletion.NewEngine(nil, testLogger())
	e.Delete(context.Background(), target)

	want := []string{"proc", "update", "hard", "verify"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestDelete_VerificationFetchError(t *testing.T) {
	t.Parallel()

	target := &mockTarget{}
	e := deletion.NewEngine(nil, testLogger())

	res := e.Delete(context.Background(), target)

	if res.Outcome != deletion.OutcomeFailure {
		t.Fatalf("unverifiable state must be reported as failure, got %s", res.Outcome)
	}
}
