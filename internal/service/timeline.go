package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/timeline"
)

// liveRowLimit bounds each per-table live-row fetch during timeline builds.
const liveRowLimit = 500

// TimelineService builds per-case timelines from the audit ledger and the
// live rows of every case-scoped store.
type TimelineService struct {
	cases   CaseStore
	builder *timeline.Builder
}

// NewTimelineService wires a timeline builder over the given stores. Tables
// without a fetcher here still produce events, just without a current row.
func NewTimelineService(
	audit timeline.AuditSource,
	cases CaseStore,
	docs DocumentStore,
	tasks TaskStore,
	notes NoteStore,
	entries TimeEntryStore,
	log *logrus.Logger,
) *TimelineService {
	live := map[string]timeline.LiveFetch{
		"cases": func(ctx context.Context, caseID string) (map[string]any, error) {
			c, err := cases.GetCase(ctx, caseID)
			if errors.Is(err, models.ErrCaseNotFound) {
				return map[string]any{}, nil
			}
			if err != nil {
				return nil, err
			}
			return map[string]any{c.ID: c}, nil
		},
		"documents": func(ctx context.Context, caseID string) (map[string]any, error) {
			rows, _, err := docs.ListDocuments(ctx, caseID, liveRowLimit, 0)
			if err != nil {
				return nil, err
			}
			out := make(map[string]any, len(rows))
			for i := range rows {
				out[rows[i].ID] = rows[i]
			}
			return out, nil
		},
		"tasks": func(ctx context.Context, caseID string) (map[string]any, error) {
			rows, _, err := tasks.ListTasks(ctx, caseID, liveRowLimit, 0)
			if err != nil {
				return nil, err
			}
			out := make(map[string]any, len(rows))
			for i := range rows {
				out[rows[i].ID] = rows[i]
			}
			return out, nil
		},
		"notes": func(ctx context.Context, caseID string) (map[string]any, error) {
			rows, _, err := notes.ListNotes(ctx, caseID, liveRowLimit, 0)
			if err != nil {
				return nil, err
			}
			out := make(map[string]any, len(rows))
			for i := range rows {
				out[rows[i].ID] = rows[i]
			}
			return out, nil
		},
		"time_entries": func(ctx context.Context, caseID string) (map[string]any, error) {
			rows, _, err := entries.ListTimeEntries(ctx, caseID, liveRowLimit, 0)
			if err != nil {
				return nil, err
			}
			out := make(map[string]any, len(rows))
			for i := range rows {
				out[rows[i].ID] = rows[i]
			}
			return out, nil
		},
	}

	return &TimelineService{
		cases:   cases,
		builder: timeline.NewBuilder(audit, live, log),
	}
}

// BuildTimeline returns the merged audit-and-live view for one case. The case
// must exist and be live; a deleted or unknown case is NotFound.
func (s *TimelineService) BuildTimeline(ctx context.Context, caseID string) (*timeline.Result, error) {
	if _, err := s.cases.GetCase(ctx, caseID); err != nil {
		return nil, err
	}

	return s.builder.Build(ctx, caseID)
}
