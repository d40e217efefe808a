package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// NoteHandler serves note endpoints nested under a case.
type NoteHandler struct {
	svc NoteService
	log *logrus.Logger
}

// NewNoteHandler creates a NoteHandler with the given service and logger.
func NewNoteHandler(svc NoteService, log *logrus.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, log: log}
}

// List handles GET /api/v1/cases/:id/notes.
func (h *NoteHandler) List(c *gin.Context) {
	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	notes, hasMore, err := h.svc.ListNotes(c.Request.Context(), caseID, limit, offset)
	if err != nil {
		handleServiceError(c, h.log, err, "listing notes")

		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes, "has_more": hasMore})
}

// Get handles GET /api/v1/cases/:id/notes/:noteID.
func (h *NoteHandler) Get(c *gin.Context) {
	caseID, noteID := c.Param("id"), c.Param("noteID")
	if err := firstError(validatePathID(caseID), validatePathID(noteID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	note, err := h.svc.GetNote(c.Request.Context(), caseID, noteID)
	if err != nil {
		handleServiceError(c, h.log, err, "getting note")

		return
	}

	c.JSON(http.StatusOK, note)
}

// Create handles POST /api/v1/cases/:id/notes.
func (h *NoteHandler) Create(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	note, err := h.svc.CreateNote(c.Request.Context(), user, caseID, req)
	if err != nil {
		handleServiceError(c, h.log, err, "creating note")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "note.create", "case_id": caseID, "note_id": note.ID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, note)
}

// Patch handles PATCH /api/v1/cases/:id/notes/:noteID.
func (h *NoteHandler) Patch(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, noteID := c.Param("id"), c.Param("noteID")
	if err := firstError(validatePathID(caseID), validatePathID(noteID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	note, err := h.svc.PatchNote(c.Request.Context(), user, caseID, noteID, patch)
	if err != nil {
		handleServiceError(c, h.log, err, "patching note")

		return
	}

	c.JSON(http.StatusOK, note)
}

// Delete handles DELETE /api/v1/cases/:id/notes/:noteID.
func (h *NoteHandler) Delete(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, noteID := c.Param("id"), c.Param("noteID")
	if err := firstError(validatePathID(caseID), validatePathID(noteID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	res, err := h.svc.DeleteNote(c.Request.Context(), user, caseID, noteID)
	if err != nil {
		handleServiceError(c, h.log, err, "deleting note")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "note.delete", "case_id": caseID, "note_id": noteID,
		"user_id": user.ID, "outcome": res.Outcome, "method": res.Method,
	}).Info("audit")

	writeDeletionResult(c, res, "note")
}
