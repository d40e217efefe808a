package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/middleware"
	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/ws"
)

// userFrom extracts the authenticated user from the Gin context. Responds 401
// and returns nil if the auth middleware did not run.
func userFrom(c *gin.Context) *models.User {
	user := middleware.UserFrom(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
	}

	return user
}

// writeDeletionResult renders the terminal state of a tiered deletion. The
// method tag is always present on success so callers can see which tier did
// the work; a warning (blob cleanup failure) never downgrades the status.
func writeDeletionResult(c *gin.Context, res deletion.Result, noun string) {
	if !res.Success() {
		body := gin.H{"error": noun + " could not be deleted"}
		if res.Warning != "" {
			body["warning"] = res.Warning
		}

		c.JSON(http.StatusInternalServerError, body)

		return
	}

	body := gin.H{
		"message": noun + " deleted",
		"success": true,
		"method":  string(res.Method),
	}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}

	c.JSON(http.StatusOK, body)
}

func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, corsOrigins []string, cases CaseService, sessions ws.SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		caseID := c.Param("id")
		if err := validatePathID(caseID); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}

		if _, err := cases.GetCase(c.Request.Context(), caseID); err != nil {
			handleServiceError(c, log, err, "resolving case for watch")

			return
		}

		// Extract the raw session token for periodic re-validation.
		token := middleware.ExtractBearerToken(c)

		// CORS origins are reused as WebSocket origin patterns. The config
		// validator ensures these are safe host patterns (no wildcards etc.).
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       corsOrigins,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Error("websocket accept failed")

			return
		}

		client := ws.NewClient(hub, conn, sessions, token, caseID)
		hub.Register(client)

		// Derive a context that cancels when either the server shuts down or the request ends.
		wsCtx, wsCancel := context.WithCancel(appCtx)
		go func() {
			select {
			case <-c.Request.Context().Done():
				wsCancel()
			case <-wsCtx.Done():
			}
		}()

		go client.WritePump(wsCtx)
		client.ReadPump(wsCtx)
		wsCancel()
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		if user := middleware.UserFrom(c); user != nil {
			fields["user_id"] = user.ID
		}
		log.WithFields(fields).Info("request")
	}
}

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 500

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 100000

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxPaginationLimit {
		return maxPaginationLimit
	}

	return v
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	if v > maxPaginationOffset {
		return maxPaginationOffset
	}

	return v
}

// validatePathID checks that a path parameter ID is non-empty and within length limits.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("id exceeds maximum length of 255")
	}
	return nil
}
