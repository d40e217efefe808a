package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// TaskStore is the data-access interface TaskService depends on.
type TaskStore interface {
	CreateTask(ctx context.Context, actor models.Actor, caseID string, req models.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, caseID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, caseID string, limit, offset int) ([]models.Task, bool, error)
	PatchTask(ctx context.Context, actor models.Actor, caseID, taskID string, fields map[string]any) (*models.Task, error)
	DeletionTarget(actor models.Actor, caseID, taskID string) deletion.Target
}

// TaskService wraps TaskStore with validation, authorization, and tiered
// deletion.
type TaskService struct {
	store   TaskStore
	members MembershipChecker
	deleter Deleter
	log     *logrus.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(store TaskStore, members MembershipChecker, deleter Deleter, log *logrus.Logger) *TaskService {
	return &TaskService{store: store, members: members, deleter: deleter, log: log}
}

// CreateTask validates and creates a task.
func (s *TaskService) CreateTask(
	ctx context.Context, user *models.User, caseID string, req models.CreateTaskRequest,
) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateTask(ctx, models.ActorFor(user), caseID, req)
}

// GetTask returns a live task scoped to its case (pass-through).
func (s *TaskService) GetTask(ctx context.Context, caseID, taskID string) (*models.Task, error) {
	return s.store.GetTask(ctx, caseID, taskID)
}

// ListTasks returns a paginated list of live tasks (pass-through).
func (s *TaskService) ListTasks(
	ctx context.Context, caseID string, limit, offset int,
) ([]models.Task, bool, error) {
	return s.store.ListTasks(ctx, caseID, limit, offset)
}

// PatchTask applies a partial update with unknown fields dropped.
func (s *TaskService) PatchTask(
	ctx context.Context, user *models.User, caseID, taskID string, patch map[string]any,
) (*models.Task, error) {
	fields := models.FilterTaskPatch(patch)
	if len(fields) == 0 {
		return s.store.GetTask(ctx, caseID, taskID)
	}

	return s.store.PatchTask(ctx, models.ActorFor(user), caseID, taskID, fields)
}

// DeleteTask resolves the task, authorizes the caller, and runs the tiered
// deletion pipeline.
func (s *TaskService) DeleteTask(
	ctx context.Context, user *models.User, caseID, taskID string,
) (deletion.Result, error) {
	task, err := s.store.GetTask(ctx, caseID, taskID)
	if err != nil {
		return deletion.Result{}, err
	}

	ok, err := canDelete(ctx, s.members, user, caseID, task.CreatedBy)
	if err != nil {
		return deletion.Result{}, err
	}
	if !ok {
		return deletion.Result{}, models.ErrForbidden
	}

	target := s.store.DeletionTarget(models.ActorFor(user), caseID, taskID)

	return s.deleter.Delete(ctx, target), nil
}
