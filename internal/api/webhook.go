package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/service"
)

// webhookSecretHeader carries the shared secret on inbound webhook calls.
const webhookSecretHeader = "X-Webhook-Secret"

// WebhookHandler serves inbound integrations. Webhook routes sit outside the
// session auth middleware; the shared secret is the whole authentication.
type WebhookHandler struct {
	svc    WebhookService
	secret string
	log    *logrus.Logger
}

// NewWebhookHandler creates a WebhookHandler with the given service and secret.
func NewWebhookHandler(svc WebhookService, secret string, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, secret: secret, log: log}
}

// Chat handles POST /api/v1/webhooks/chat.
func (h *WebhookHandler) Chat(c *gin.Context) {
	if h.secret == "" {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "webhook not configured")

		return
	}

	provided := c.GetHeader(webhookSecretHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		h.log.WithField("client", c.ClientIP()).Warn("webhook call with bad secret")
		respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid webhook secret")

		return
	}

	var event service.ChatEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	note, err := h.svc.HandleChatEvent(c.Request.Context(), event)
	if err != nil {
		if errors.Is(err, models.ErrMissingCaseID) || errors.Is(err, models.ErrMissingContent) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		handleServiceError(c, h.log, err, "handling chat event")

		return
	}

	c.JSON(http.StatusCreated, note)
}
