package client

import (
	"context"
	"net/url"
	"strconv"
)

// TaskService handles task operations under a case.
type TaskService struct {
	c *Client
}

// taskListResponse wraps the paginated task list response.
type taskListResponse struct {
	Tasks   []Task `json:"tasks"`
	HasMore bool   `json:"has_more"`
}

func taskPath(caseID, taskID string) string {
	p := "/api/v1/cases/" + url.PathEscape(caseID) + "/tasks"
	if taskID != "" {
		p += "/" + url.PathEscape(taskID)
	}
	return p
}

// List returns live tasks on a case.
func (s *TaskService) List(ctx context.Context, caseID string, limit, offset int) ([]Task, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp taskListResponse
	if err := s.c.get(ctx, taskPath(caseID, ""), params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Tasks, resp.HasMore, nil
}

// Get returns one live task.
func (s *TaskService) Get(ctx context.Context, caseID, taskID string) (*Task, error) {
	var task Task
	if err := s.c.get(ctx, taskPath(caseID, taskID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create adds a task to a case.
func (s *TaskService) Create(ctx context.Context, caseID string, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := s.c.post(ctx, taskPath(caseID, ""), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Patch applies a partial update to a task (title, description, status, ...).
func (s *TaskService) Patch(ctx context.Context, caseID, taskID string, fields map[string]any) (*Task, error) {
	var task Task
	if err := s.c.patch(ctx, taskPath(caseID, taskID), fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task. The result reports which deletion tier ran.
func (s *TaskService) Delete(ctx context.Context, caseID, taskID string) (*DeleteResult, error) {
	var res DeleteResult
	if err := s.c.del(ctx, taskPath(caseID, taskID), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
