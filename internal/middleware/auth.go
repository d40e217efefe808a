package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// authTimingFloor is the minimum response time for failed auth so response
// timing cannot distinguish valid from invalid session tokens.
const authTimingFloor = 50 * time.Millisecond

// UserKey is the gin context key holding the authenticated *models.User.
const UserKey = "user"

// UserLookup resolves a session token to its user.
type UserLookup interface {
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

// truncateToken returns at most the first 4 characters of token followed by "...".
func truncateToken(token string) string {
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return token
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// Auth returns Gin middleware that authenticates requests via Bearer session
// token. If a BruteForceGuard is provided, failed attempts are tracked per
// token hash.
func Auth(lookup UserLookup, log *logrus.Logger, guards ...*BruteForceGuard) gin.HandlerFunc {
	var guard *BruteForceGuard
	if len(guards) > 0 {
		guard = guards[0]
	}

	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		if guard != nil && guard.IsBlocked(token) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "too many failed attempts")
			return
		}

		user, err := lookup.GetUserByToken(c.Request.Context(), token)
		if err != nil {
			logAuthFailure(log, c, token)

			if guard != nil {
				guard.RecordFailure(token)
			}

			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid session token")
			return
		}

		if guard != nil {
			guard.ResetKey(token)
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireAdmin gates an endpoint to admin users. It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFrom(c)
		if user == nil || user.Role != models.RoleAdmin {
			respondError(c, http.StatusForbidden, "forbidden", "admin role required")
			return
		}

		c.Next()
	}
}

// UserFrom returns the authenticated user from the gin context, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}

	user, ok := v.(*models.User)
	if !ok {
		return nil
	}

	return user
}

// ExtractBearerToken extracts the session token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// logAuthFailure logs a failed authentication attempt.
func logAuthFailure(log *logrus.Logger, c *gin.Context, token string) {
	log.WithFields(logrus.Fields{
		"client_ip":    c.ClientIP(),
		"method":       c.Request.Method,
		"path":         c.Request.URL.Path,
		"user_agent":   c.Request.UserAgent(),
		"request_id":   c.GetString("request_id"),
		"token_prefix": truncateToken(token),
	}).Warn("authentication failed: invalid session token")
}
