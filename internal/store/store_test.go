package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/dbpool"
	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

// getTestEnv connects to the migrated database named by TEST_DATABASE_URL,
// skipping the test when it is unset.
func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestCase creates a fresh user and case, cleaned up after the test.
// Cleanup removes the case's rows but never touches audit_logs: the table is
// append-only, and the chain stays verifiable across test runs.
func setupTestCase(t *testing.T) (store.Base, models.Actor, string) {
	t.Helper()

	env := getTestEnv(t)
	ctx := context.Background()

	userID := uuid.New().String()
	_, err := env.pool.Exec(ctx,
		"INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, 'lawyer')",
		userID, fmt.Sprintf("test-%s@example.com", userID[:8]), "Test Lawyer",
	)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	base := store.Base{Pool: env.pool, Log: env.log}
	actor := models.Actor{
		UserID: userID,
		Email:  fmt.Sprintf("test-%s@example.com", userID[:8]),
		Name:   "Test Lawyer",
		Role:   "lawyer",
	}

	cs := store.NewCaseStore(base)
	c, err := cs.CreateCase(ctx, actor, models.CreateCaseRequest{
		Title:      "Test Matter " + userID[:8],
		ClientName: "Test Client",
	})
	if err != nil {
		t.Fatalf("creating test case: %v", err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		// Delete in dependency order: children, memberships, case, user.
		env.pool.Exec(cleanCtx, "DELETE FROM notes WHERE case_id = $1", c.ID)        //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM documents WHERE case_id = $1", c.ID)    //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM tasks WHERE case_id = $1", c.ID)        //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM time_entries WHERE case_id = $1", c.ID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM case_members WHERE case_id = $1", c.ID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM cases WHERE id = $1", c.ID)             //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM users WHERE id = $1", userID)           //nolint:errcheck // best-effort cleanup
	})

	return base, actor, c.ID
}

// createTestNote inserts one note into the given case.
func createTestNote(t *testing.T, base store.Base, actor models.Actor, caseID, content string) *models.Note {
	t.Helper()

	ns := store.NewNoteStore(base)
	note, err := ns.CreateNote(context.Background(), actor, caseID, models.CreateNoteRequest{
		ID:      uuid.New().String(),
		Content: content,
	})
	if err != nil {
		t.Fatalf("creating test note: %v", err)
	}

	return note
}
