package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/deletion"
	"github.com/caseflowhq/caseflow/internal/models"
)

// TimeEntryStore is the data-access interface TimeEntryService depends on.
type TimeEntryStore interface {
	CreateTimeEntry(ctx context.Context, actor models.Actor, caseID string, req models.CreateTimeEntryRequest) (*models.TimeEntry, error)
	GetTimeEntry(ctx context.Context, caseID, entryID string) (*models.TimeEntry, error)
	ListTimeEntries(ctx context.Context, caseID string, limit, offset int) ([]models.TimeEntry, bool, error)
	PatchTimeEntry(ctx context.Context, actor models.Actor, caseID, entryID string, fields map[string]any) (*models.TimeEntry, error)
	DeletionTarget(actor models.Actor, caseID, entryID string) deletion.Target
}

// TimeEntryService wraps TimeEntryStore with validation, authorization, and
// tiered deletion.
type TimeEntryService struct {
	store   TimeEntryStore
	members MembershipChecker
	deleter Deleter
	log     *logrus.Logger
}

// NewTimeEntryService creates a TimeEntryService.
func NewTimeEntryService(store TimeEntryStore, members MembershipChecker, deleter Deleter, log *logrus.Logger) *TimeEntryService {
	return &TimeEntryService{store: store, members: members, deleter: deleter, log: log}
}

// CreateTimeEntry validates and logs billable time.
func (s *TimeEntryService) CreateTimeEntry(
	ctx context.Context, user *models.User, caseID string, req models.CreateTimeEntryRequest,
) (*models.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateTimeEntry(ctx, models.ActorFor(user), caseID, req)
}

// GetTimeEntry returns a live time entry scoped to its case (pass-through).
func (s *TimeEntryService) GetTimeEntry(ctx context.Context, caseID, entryID string) (*models.TimeEntry, error) {
	return s.store.GetTimeEntry(ctx, caseID, entryID)
}

// ListTimeEntries returns a paginated list of live time entries (pass-through).
func (s *TimeEntryService) ListTimeEntries(
	ctx context.Context, caseID string, limit, offset int,
) ([]models.TimeEntry, bool, error) {
	return s.store.ListTimeEntries(ctx, caseID, limit, offset)
}

// PatchTimeEntry applies a partial update with unknown fields dropped.
func (s *TimeEntryService) PatchTimeEntry(
	ctx context.Context, user *models.User, caseID, entryID string, patch map[string]any,
) (*models.TimeEntry, error) {
	fields := models.FilterTimeEntryPatch(patch)
	if len(fields) == 0 {
		return s.store.GetTimeEntry(ctx, caseID, entryID)
	}

	return s.store.PatchTimeEntry(ctx, models.ActorFor(user), caseID, entryID, fields)
}

// DeleteTimeEntry resolves the entry, authorizes the caller, and runs the
// tiered deletion pipeline. A time entry's creator is its UserID.
func (s *TimeEntryService) DeleteTimeEntry(
	ctx context.Context, user *models.User, caseID, entryID string,
) (deletion.Result, error) {
	entry, err := s.store.GetTimeEntry(ctx, caseID, entryID)
	if err != nil {
		return deletion.Result{}, err
	}

	ok, err := canDelete(ctx, s.members, user, caseID, entry.UserID)
	if err != nil {
		return deletion.Result{}, err
	}
	if !ok {
		return deletion.Result{}, models.ErrForbidden
	}

	target := s.store.DeletionTarget(models.ActorFor(user), caseID, entryID)

	return s.deleter.Delete(ctx, target), nil
}
