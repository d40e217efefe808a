package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/httputil"
	"github.com/caseflowhq/caseflow/internal/metrics"
	"github.com/caseflowhq/caseflow/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeForbidden       = "forbidden"
	ErrCodeConflict        = "conflict"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// notFoundSentinels maps entity lookup failures to their client-facing message.
var notFoundSentinels = []error{
	models.ErrCaseNotFound,
	models.ErrDocumentNotFound,
	models.ErrTaskNotFound,
	models.ErrNoteNotFound,
	models.ErrTimeEntryNotFound,
	models.ErrUserNotFound,
}

// handleServiceError translates a service layer error into an HTTP response.
// Anything without a sentinel mapping is logged and reported as a 500.
func handleServiceError(c *gin.Context, log *logrus.Logger, err error, action string) {
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, sentinel.Error())

			return
		}
	}

	if errors.Is(err, models.ErrForbidden) {
		respondError(c, http.StatusForbidden, ErrCodeForbidden, "not permitted")

		return
	}

	if errors.Is(err, models.ErrDuplicateKey) {
		respondError(c, http.StatusConflict, ErrCodeConflict, "resource already exists")

		return
	}

	log.WithError(err).Error(action)
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
