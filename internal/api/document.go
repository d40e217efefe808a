package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// DocumentHandler serves document endpoints nested under a case.
type DocumentHandler struct {
	svc DocumentService
	log *logrus.Logger
}

// NewDocumentHandler creates a DocumentHandler with the given service and logger.
func NewDocumentHandler(svc DocumentService, log *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: log}
}

// List handles GET /api/v1/cases/:id/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	docs, hasMore, err := h.svc.ListDocuments(c.Request.Context(), caseID, limit, offset)
	if err != nil {
		handleServiceError(c, h.log, err, "listing documents")

		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "has_more": hasMore})
}

// Get handles GET /api/v1/cases/:id/documents/:docID.
func (h *DocumentHandler) Get(c *gin.Context) {
	caseID, docID := c.Param("id"), c.Param("docID")
	if err := firstError(validatePathID(caseID), validatePathID(docID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	doc, err := h.svc.GetDocument(c.Request.Context(), caseID, docID)
	if err != nil {
		handleServiceError(c, h.log, err, "getting document")

		return
	}

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /api/v1/cases/:id/documents.
func (h *DocumentHandler) Create(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	doc, err := h.svc.CreateDocument(c.Request.Context(), user, caseID, req)
	if err != nil {
		handleServiceError(c, h.log, err, "creating document")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.create", "case_id": caseID, "document_id": doc.ID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, doc)
}

// Patch handles PATCH /api/v1/cases/:id/documents/:docID.
func (h *DocumentHandler) Patch(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, docID := c.Param("id"), c.Param("docID")
	if err := firstError(validatePathID(caseID), validatePathID(docID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	doc, err := h.svc.PatchDocument(c.Request.Context(), user, caseID, docID, patch)
	if err != nil {
		handleServiceError(c, h.log, err, "patching document")

		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /api/v1/cases/:id/documents/:docID. The response
// carries the deletion method so a silently degraded tier is visible.
func (h *DocumentHandler) Delete(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, docID := c.Param("id"), c.Param("docID")
	if err := firstError(validatePathID(caseID), validatePathID(docID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	res, err := h.svc.DeleteDocument(c.Request.Context(), user, caseID, docID)
	if err != nil {
		handleServiceError(c, h.log, err, "deleting document")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "document.delete", "case_id": caseID, "document_id": docID,
		"user_id": user.ID, "outcome": res.Outcome, "method": res.Method,
	}).Info("audit")

	writeDeletionResult(c, res, "document")
}
