package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// TaskHandler serves task endpoints nested under a case.
type TaskHandler struct {
	svc TaskService
	log *logrus.Logger
}

// NewTaskHandler creates a TaskHandler with the given service and logger.
func NewTaskHandler(svc TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// List handles GET /api/v1/cases/:id/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	tasks, hasMore, err := h.svc.ListTasks(c.Request.Context(), caseID, limit, offset)
	if err != nil {
		handleServiceError(c, h.log, err, "listing tasks")

		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "has_more": hasMore})
}

// Get handles GET /api/v1/cases/:id/tasks/:taskID.
func (h *TaskHandler) Get(c *gin.Context) {
	caseID, taskID := c.Param("id"), c.Param("taskID")
	if err := firstError(validatePathID(caseID), validatePathID(taskID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	task, err := h.svc.GetTask(c.Request.Context(), caseID, taskID)
	if err != nil {
		handleServiceError(c, h.log, err, "getting task")

		return
	}

	c.JSON(http.StatusOK, task)
}

// Create handles POST /api/v1/cases/:id/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), user, caseID, req)
	if err != nil {
		handleServiceError(c, h.log, err, "creating task")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "task.create", "case_id": caseID, "task_id": task.ID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, task)
}

// Patch handles PATCH /api/v1/cases/:id/tasks/:taskID.
func (h *TaskHandler) Patch(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, taskID := c.Param("id"), c.Param("taskID")
	if err := firstError(validatePathID(caseID), validatePathID(taskID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	task, err := h.svc.PatchTask(c.Request.Context(), user, caseID, taskID, patch)
	if err != nil {
		handleServiceError(c, h.log, err, "patching task")

		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/cases/:id/tasks/:taskID.
func (h *TaskHandler) Delete(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, taskID := c.Param("id"), c.Param("taskID")
	if err := firstError(validatePathID(caseID), validatePathID(taskID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	res, err := h.svc.DeleteTask(c.Request.Context(), user, caseID, taskID)
	if err != nil {
		handleServiceError(c, h.log, err, "deleting task")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "task.delete", "case_id": caseID, "task_id": taskID,
		"user_id": user.ID, "outcome": res.Outcome, "method": res.Method,
	}).Info("audit")

	writeDeletionResult(c, res, "task")
}
