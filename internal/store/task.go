package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// TaskStore provides data access for case tasks.
type TaskStore struct {
	Base
}

// NewTaskStore creates a TaskStore.
func NewTaskStore(base Base) *TaskStore {
	return &TaskStore{Base: base}
}

const taskColumns = `id, case_id, title, description, status, assigned_to,
	due_date, created_by, deleted_at, created_at, updated_at`

// CreateTask creates a task under a case.
func (s *TaskStore) CreateTask(
	ctx context.Context, actor models.Actor, caseID string, req models.CreateTaskRequest,
) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, actor)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	row := tx.QueryRow(ctx, `
		INSERT INTO tasks (id, case_id, title, description, status, assigned_to, due_date, created_by)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6, $7)
		RETURNING `+taskColumns,
		req.ID, caseID, req.Title, req.Description, req.AssignedTo, req.DueDate, actor.UserID,
	)

	task, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return task, nil
}

// GetTask returns a live task scoped to its case.
func (s *TaskStore) GetTask(ctx context.Context, caseID, taskID string) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE id = $1 AND case_id = $2 AND deleted_at IS NULL`,
		taskID, caseID,
	)

	task, err := scanTask(row)
	if err != nil {
		return nil, mapNoRows(err, models.ErrTaskNotFound)
	}

	return task, nil
}

// ListTasks returns live tasks for a case, newest-first.
func (s *TaskStore) ListTasks(ctx context.Context, caseID string, limit, offset int) ([]models.Task, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit)

	rows, err := s.Pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE case_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		caseID, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task

	for rows.Next() {
		tk, err := scanTask(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *tk)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating tasks: %w", err)
	}

	hasMore := len(tasks) > limit
	if hasMore {
		tasks = tasks[:limit]
	}

	return tasks, hasMore, nil
}

// PatchTask applies an allow-listed field map to a live task.
func (s *TaskStore) PatchTask(
	ctx context.Context, actor models.Actor, caseID, taskID string, fields map[string]any,
) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, tx, err := s.patchRow(ctx, actor, "tasks", taskID, caseID, fields, taskColumns)
	if err != nil {
		return nil, err
	}

	return finishPatch(ctx, rows, tx, scanTask, models.ErrTaskNotFound)
}

// DeletionTarget builds the tiered-deletion adapter for a task.
func (s *TaskStore) DeletionTarget(actor models.Actor, caseID, taskID string) deletion.Target {
	return NewDeletionTarget(s.Base, actor, "tasks", taskID, caseID, "")
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var (
		t           models.Task
		description *string
	)

	err := row.Scan(
		&t.ID, &t.CaseID, &t.Title, &description, &t.Status, &t.AssignedTo,
		&t.DueDate, &t.CreatedBy, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		t.Description = *description
	}

	return &t, nil
}
