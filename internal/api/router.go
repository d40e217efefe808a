package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/dbpool"
	"github.com/caseflowhq/caseflow/internal/middleware"
	"github.com/caseflowhq/caseflow/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log           *logrus.Logger
	Pool          *dbpool.Pool
	Hub           *ws.Hub
	Cases         CaseService
	Documents     DocumentService
	Tasks         TaskService
	Notes         NoteService
	TimeEntries   TimeEntryService
	Audit         AuditService
	Timeline      TimelineService
	Webhook       WebhookService
	Sessions      middleware.UserLookup
	CORSOrigins   []string
	WebhookSecret string
	Version       string
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version)
	cases := NewCaseHandler(deps.Cases, log)
	documents := NewDocumentHandler(deps.Documents, log)
	tasks := NewTaskHandler(deps.Tasks, log)
	notes := NewNoteHandler(deps.Notes, log)
	entries := NewTimeEntryHandler(deps.TimeEntries, log)
	audit := NewAuditHandler(deps.Audit, log)
	tl := NewTimelineHandler(deps.Timeline, log)
	webhook := NewWebhookHandler(deps.Webhook, deps.WebhookSecret, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Webhooks authenticate with a shared secret, not a session.
	api.POST("/webhooks/chat", webhook.Chat)

	// All other API routes require a session token.
	guard := middleware.NewBruteForceGuard(ctx, log)
	api.Use(middleware.BruteForceMiddleware(guard))
	api.Use(middleware.Auth(middleware.NewCachedUserLookup(ctx, deps.Sessions), log, guard))

	// Cases and roster.
	api.GET("/cases", cases.List)
	api.POST("/cases", cases.Create)
	api.GET("/cases/:id", cases.Get)
	api.POST("/cases/:id/members/:userID", cases.AddMember)
	api.DELETE("/cases/:id/members/:userID", cases.RemoveMember)

	// Documents.
	api.GET("/cases/:id/documents", documents.List)
	api.POST("/cases/:id/documents", documents.Create)
	api.GET("/cases/:id/documents/:docID", documents.Get)
	api.PATCH("/cases/:id/documents/:docID", documents.Patch)
	api.DELETE("/cases/:id/documents/:docID", documents.Delete)

	// Tasks.
	api.GET("/cases/:id/tasks", tasks.List)
	api.POST("/cases/:id/tasks", tasks.Create)
	api.GET("/cases/:id/tasks/:taskID", tasks.Get)
	api.PATCH("/cases/:id/tasks/:taskID", tasks.Patch)
	api.DELETE("/cases/:id/tasks/:taskID", tasks.Delete)

	// Notes.
	api.GET("/cases/:id/notes", notes.List)
	api.POST("/cases/:id/notes", notes.Create)
	api.GET("/cases/:id/notes/:noteID", notes.Get)
	api.PATCH("/cases/:id/notes/:noteID", notes.Patch)
	api.DELETE("/cases/:id/notes/:noteID", notes.Delete)

	// Time entries.
	api.GET("/cases/:id/time-entries", entries.List)
	api.POST("/cases/:id/time-entries", entries.Create)
	api.GET("/cases/:id/time-entries/:entryID", entries.Get)
	api.PATCH("/cases/:id/time-entries/:entryID", entries.Patch)
	api.DELETE("/cases/:id/time-entries/:entryID", entries.Delete)

	// Audit ledger.
	api.GET("/audit", audit.Query)
	api.GET("/audit/verify", middleware.RequireAdmin(), audit.Verify)

	// Timeline.
	api.GET("/cases/:id/timeline", tl.Get)

	// Live case feed.
	api.GET("/cases/:id/watch", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, deps.Cases, deps.Sessions))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
