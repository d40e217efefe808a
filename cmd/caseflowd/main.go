// Command caseflowd runs the case management API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/api"
	"github.com/caseflowhq/caseflow/internal/blob"
	"github.com/caseflowhq/caseflow/internal/config"
	"github.com/caseflowhq/caseflow/internal/db"
	"github.com/caseflowhq/caseflow/internal/db/migrations"
	"github.com/caseflowhq/caseflow/internal/dbpool"
	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/service"
	"github.com/caseflowhq/caseflow/internal/store"
	"github.com/caseflowhq/caseflow/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	// Blob storage is optional; deletion degrades to row-only cleanup without it.
	var blobs *blob.Store
	if cfg.BlobEnabled() {
		blobs, err = blob.New(ctx, cfg.BlobEndpoint, cfg.BlobAccessKey.Value(), cfg.BlobSecretKey.Value(), cfg.BlobBucket, cfg.BlobUseSSL)
		if err != nil {
			return err
		}
		log.WithField("endpoint", cfg.BlobEndpoint).Info("blob store connected")
	}

	base := store.Base{Pool: pool, Log: log}
	users := store.NewUserStore(base)
	cases := store.NewCaseStore(base)
	documents := store.NewDocumentStore(base)
	tasks := store.NewTaskStore(base)
	notes := store.NewNoteStore(base)
	entries := store.NewTimeEntryStore(base)
	audit := store.NewAuditStore(base)

	var engine *deletion.Engine
	if blobs != nil {
		engine = deletion.NewEngine(blobs, log)
	} else {
		engine = deletion.NewEngine(nil, log)
	}

	hub := ws.NewHub(log)
	go hub.Run(ctx)
	defer hub.Shutdown()

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return err
	}

	deps := &api.RouterDeps{
		Log:           log,
		Pool:          pool,
		Hub:           hub,
		Cases:         service.NewCaseService(cases, log),
		Documents:     service.NewDocumentService(documents, cases, engine, log),
		Tasks:         service.NewTaskService(tasks, cases, engine, log),
		Notes:         service.NewNoteService(notes, cases, engine, log),
		TimeEntries:   service.NewTimeEntryService(entries, cases, engine, log),
		Audit:         service.NewAuditService(audit, log),
		Timeline:      service.NewTimelineService(audit, cases, documents, tasks, notes, entries, log),
		Webhook:       service.NewWebhookService(notes, cases, users, log),
		Sessions:      users,
		CORSOrigins:   cfg.CORSOrigins,
		WebhookSecret: cfg.WebhookSecret.Value(),
		Version:       config.Version,
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
