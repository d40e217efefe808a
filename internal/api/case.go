package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// CaseHandler serves case CRUD and roster endpoints.
type CaseHandler struct {
	svc CaseService
	log *logrus.Logger
}

// NewCaseHandler creates a CaseHandler with the given service and logger.
func NewCaseHandler(svc CaseService, log *logrus.Logger) *CaseHandler {
	return &CaseHandler{svc: svc, log: log}
}

// List handles GET /api/v1/cases.
func (h *CaseHandler) List(c *gin.Context) {
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	cases, hasMore, err := h.svc.ListCases(c.Request.Context(), limit, offset)
	if err != nil {
		handleServiceError(c, h.log, err, "listing cases")

		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": cases, "has_more": hasMore})
}

// Get handles GET /api/v1/cases/:id.
func (h *CaseHandler) Get(c *gin.Context) {
	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	kase, err := h.svc.GetCase(c.Request.Context(), caseID)
	if err != nil {
		handleServiceError(c, h.log, err, "getting case")

		return
	}

	c.JSON(http.StatusOK, kase)
}

// Create handles POST /api/v1/cases.
func (h *CaseHandler) Create(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	var req models.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	kase, err := h.svc.CreateCase(c.Request.Context(), user, req)
	if err != nil {
		handleServiceError(c, h.log, err, "creating case")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "case.create", "case_id": kase.ID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, kase)
}

// AddMember handles POST /api/v1/cases/:id/members/:userID.
func (h *CaseHandler) AddMember(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, userID := c.Param("id"), c.Param("userID")
	if err := firstError(validatePathID(caseID), validatePathID(userID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.AddMember(c.Request.Context(), user, caseID, userID); err != nil {
		handleServiceError(c, h.log, err, "adding case member")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "case.member_add", "case_id": caseID, "member_id": userID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, gin.H{"case_id": caseID, "user_id": userID})
}

// RemoveMember handles DELETE /api/v1/cases/:id/members/:userID.
func (h *CaseHandler) RemoveMember(c *gin.Context) {
	user := userFrom(c)
	if user == nil {
		return
	}

	caseID, userID := c.Param("id"), c.Param("userID")
	if err := firstError(validatePathID(caseID), validatePathID(userID)); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.svc.RemoveMember(c.Request.Context(), user, caseID, userID); err != nil {
		handleServiceError(c, h.log, err, "removing case member")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "case.member_remove", "case_id": caseID, "member_id": userID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"message": "member removed", "success": true})
}

// firstError returns the first non-nil error of its arguments.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}