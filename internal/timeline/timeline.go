package timeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/caseflowhq/caseflow/internal/models"
)

// fetchLimit bounds how far back the builder looks in the audit ledger.
const fetchLimit = 500

// recentActivityCount is the size of the stats summary slice.
const recentActivityCount = 5

// Event is one rendered timeline entry. EffectiveOperation may differ from
// the underlying audit operation: an UPDATE that set deleted_at is shown as
// a DELETE. The stored record is never altered, only this derived view.
type Event struct {
	ID                 string         `json:"id"`
	TableName          string         `json:"table_name"`
	RecordID           string         `json:"record_id"`
	Operation          string         `json:"operation"`
	EffectiveOperation string         `json:"effective_operation"`
	IsDeleted          bool           `json:"is_deleted"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Icon               string         `json:"icon"`
	Color              string         `json:"color"`
	Actor              models.Actor   `json:"actor"`
	ChangedFields      []string       `json:"changed_fields,omitempty"`
	Current            any            `json:"current,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	raw                models.AuditRecord
}

// Stats summarizes a built timeline.
type Stats struct {
	TotalEvents    int            `json:"total_events"`
	DeletedItems   int            `json:"deleted_items"`
	ActiveItems    map[string]int `json:"active_items"`
	RecentActivity []Event        `json:"recent_activity"`
}

// Result is the complete timeline response for one case.
type Result struct {
	Timeline []Event `json:"timeline"`
	Stats    Stats   `json:"stats"`
}

// AuditSource supplies raw ledger records, newest-first.
type AuditSource interface {
	FetchRecent(ctx context.Context, limit int) ([]models.AuditRecord, error)
}

// LiveFetch loads the currently live rows of one table for a case, keyed by
// row id. Deleted rows must not appear in the result.
type LiveFetch func(ctx context.Context, caseID string) (map[string]any, error)

// Builder reconstructs a per-case timeline from the audit ledger and the
// currently live rows.
type Builder struct {
	audit AuditSource
	live  map[string]LiveFetch
	log   *logrus.Logger
}

// NewBuilder creates a Builder. The live map is keyed by table name; tables
// without an entry get events with no current row attached.
func NewBuilder(audit AuditSource, live map[string]LiveFetch, log *logrus.Logger) *Builder {
	return &Builder{audit: audit, live: live, log: log}
}

// Build assembles the timeline for one case. A failed ledger fetch fails the
// whole request; there is no partial timeline.
func (b *Builder) Build(ctx context.Context, caseID string) (*Result, error) {
	records, err := b.audit.FetchRecent(ctx, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching audit records: %w", err)
	}

	events := make([]Event, 0, len(records))

	for _, r := range records {
		if !matchesCase(r, caseID) {
			continue
		}
		events = append(events, render(r))
	}

	liveRows, err := b.fetchLive(ctx, caseID, events)
	if err != nil {
		return nil, err
	}

	deleted := 0

	for i := range events {
		if events[i].IsDeleted {
			deleted++
			continue
		}
		if rows, ok := liveRows[events[i].TableName]; ok {
			events[i].Current = rows[events[i].RecordID]
			if events[i].Current == nil {
				b.log.WithFields(logrus.Fields{
					"table":     events[i].TableName,
					"record_id": events[i].RecordID,
				}).Debug("timeline event has no live row")
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		ri, rj := events[i].raw, events[j].raw
		if !ri.CreatedAt.Equal(rj.CreatedAt) {
			return ri.CreatedAt.After(rj.CreatedAt)
		}
		return ri.ID > rj.ID
	})

	active := make(map[string]int, len(liveRows))
	for table, rows := range liveRows {
		active[table] = len(rows)
	}

	recent := events
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}

	return &Result{
		Timeline: events,
		Stats: Stats{
			TotalEvents:    len(events),
			DeletedItems:   deleted,
			ActiveItems:    active,
			RecentActivity: recent,
		},
	}, nil
}

// fetchLive loads live rows in parallel for every table that has at least one
// non-deleted event. Deleted events never get a row attached, so tables with
// only deleted events are skipped entirely.
func (b *Builder) fetchLive(
	ctx context.Context, caseID string, events []Event,
) (map[string]map[string]any, error) {
	needed := make(map[string]bool)

	for _, e := range events {
		if !e.IsDeleted && b.live[e.TableName] != nil {
			needed[e.TableName] = true
		}
	}

	var (
		mu   sync.Mutex
		rows = make(map[string]map[string]any, len(needed))
	)

	g, gctx := errgroup.WithContext(ctx)

	for table := range needed {
		fetch := b.live[table]
		g.Go(func() error {
			r, err := fetch(gctx, caseID)
			if err != nil {
				return fmt.Errorf("fetching live %s: %w", table, err)
			}
			mu.Lock()
			rows[table] = r
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

// matchesCase ties an audit record back to a case. Tracked tables relate to
// the case three different ways: the cases table is the case itself, join
// tables carry case_id in their payload, and child tables carry a direct
// case_id foreign key.
func matchesCase(r models.AuditRecord, caseID string) bool {
	if r.TableName == "cases" {
		return r.RecordID == caseID
	}

	return payloadString(r, "case_id") == caseID
}

// render derives the presentation view of one audit record.
func render(r models.AuditRecord) Event {
	op := r.Operation
	deleted := op == models.OpDelete

	if isSoftDelete(r) {
		op = models.OpDelete
		deleted = true
	}

	p := presentationFor(r, op)

	return Event{
		ID:                 r.ID,
		TableName:          r.TableName,
		RecordID:           r.RecordID,
		Operation:          r.Operation,
		EffectiveOperation: op,
		IsDeleted:          deleted,
		Title:              p.Title(r),
		Description:        describe(r, op),
		Icon:               p.Icon,
		Color:              p.Color,
		Actor:              r.Actor,
		ChangedFields:      r.ChangedFields,
		CreatedAt:          r.CreatedAt,
		raw:                r,
	}
}

// isSoftDelete reports whether an UPDATE record represents a soft deletion:
// changed_fields names deleted_at and the value went from null to non-null.
func isSoftDelete(r models.AuditRecord) bool {
	if r.Operation != models.OpUpdate || !r.ChangedFields.Contains("deleted_at") {
		return false
	}

	oldVal, hadOld := r.OldData["deleted_at"]
	newVal := r.NewData["deleted_at"]

	return (!hadOld || oldVal == nil) && newVal != nil
}

func describe(r models.AuditRecord, effectiveOp string) string {
	actor := r.Actor.Name
	if actor == "" {
		actor = r.Actor.Email
	}

	switch effectiveOp {
	case models.OpInsert:
		return fmt.Sprintf("Created by %s", actor)
	case models.OpDelete:
		return fmt.Sprintf("Removed by %s", actor)
	default:
		if len(r.ChangedFields) > 0 {
			return fmt.Sprintf("Updated by %s (%d fields)", actor, len(r.ChangedFields))
		}
		return fmt.Sprintf("Updated by %s", actor)
	}
}
