package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// TimeEntryHandler serves time entry endpoints nested under a case.
type TimeEntryHandler struct {
	svc TimeEntryService
	log *logrus.Logger
}

// NewTimeEntryHandler creates a TimeEntryHandler with the given service and logger.
func NewTimeEntryHandler(svc TimeEntryService, log *logrus.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{svc: svc, log: log}
}

// List handles GET /api/v1/cases/:id/time-entries.
func (h *TimeEntryHandler) List(c *gin.Context) {
	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	entries, hasMore, err := h.svc.ListTimeEntries(c.Request.Context(), caseID, limit, offset)
	if err != nil {
		handleServiceError(c, h.log, err, "listing time entries")

		return
	}

	c.JSON(http.StatusOK, gin.H{"time_entries": entries, "has_more": hasMore})
}

// Get handles GET /api/v1/cases/:id/time-entries/:entryID.
func (h *TimeEntryHandler) Get(c *gin.Context) {
	caseID, entryID := c.Param("id"), c.Param("entryID")
	if err := firstError(validatePathID(caseID), validatePathID(entryID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	entry, err := h.svc.GetTimeEntry(c.Request.Context(), caseID, entryID)
	if err != nil {
		handleServiceError(c, h.log, err, "getting time entry")

		return
	}

	c.JSON(http.StatusOK, entry)
}

// Create handles POST /api/v1/cases/:id/time-entries.
func (h *TimeEntryHandler) Create(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	entry, err := h.svc.CreateTimeEntry(c.Request.Context(), user, caseID, req)
	if err != nil {
		handleServiceError(c, h.log, err, "creating time entry")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "time_entry.create", "case_id": caseID, "entry_id": entry.ID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, entry)
}

// Patch handles PATCH /api/v1/cases/:id/time-entries/:entryID.
func (h *TimeEntryHandler) Patch(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, entryID := c.Param("id"), c.Param("entryID")
	if err := firstError(validatePathID(caseID), validatePathID(entryID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	entry, err := h.svc.PatchTimeEntry(c.Request.Context(), user, caseID, entryID, patch)
	if err != nil {
		handleServiceError(c, h.log, err, "patching time entry")

		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/v1/cases/:id/time-entries/:entryID.
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, entryID := c.Param("id"), c.Param("entryID")
	if err := firstError(validatePathID(caseID), validatePathID(entryID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	res, err := h.svc.DeleteTimeEntry(c.Request.Context(), user, caseID, entryID)
	if err != nil {
		handleServiceError(c, h.log, err, "deleting time entry")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "time_entry.delete", "case_id": caseID, "entry_id": entryID,
		"user_id": user.ID, "outcome": res.Outcome, "method": res.Method,
	}).Info("audit")

	writeDeletionResult(c, res, "time entry")
}
