package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TimelineHandler serves the per-case activity timeline.
type TimelineHandler struct {
	svc TimelineService
	log *logrus.Logger
}

// NewTimelineHandler creates a TimelineHandler with the given service and logger.
func NewTimelineHandler(svc TimelineService, log *logrus.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, log: log}
}

// Get handles GET /api/v1/cases/:id/timeline.
func (h *TimelineHandler) Get(c *gin.Context) {
	caseID := c.Param("id")
	if err := validatePathID(caseID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	result, err := h.svc.BuildTimeline(c.Request.Context(), caseID)
	if err != nil {
		handleServiceError(c, h.log, err, "building timeline")

		return
	}

	c.JSON(http.StatusOK, result)
}
