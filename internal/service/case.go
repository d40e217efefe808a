package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

// CaseStore is the data-access interface CaseService depends on.
type CaseStore interface {
	CreateCase(ctx context.Context, actor models.Actor, req models.CreateCaseRequest) (*models.Case, error)
	GetCase(ctx context.Context, caseID string) (*models.Case, error)
	ListCases(ctx context.Context, limit, offset int) ([]models.Case, bool, error)
	AddMember(ctx context.Context, actor models.Actor, caseID, userID string) error
	RemoveMember(ctx context.Context, actor models.Actor, caseID, userID string) error
	IsMember(ctx context.Context, caseID, userID string) (bool, error)
}

// CaseService wraps CaseStore with validation and membership policy.
type CaseService struct {
	store CaseStore
	log   *logrus.Logger
}

// NewCaseService creates a CaseService.
func NewCaseService(store CaseStore, log *logrus.Logger) *CaseService {
	return &CaseService{store: store, log: log}
}

// CreateCase validates and opens a case. The creator is added as the first
// member by the store.
func (s *CaseService) CreateCase(
	ctx context.Context, user *models.User, req models.CreateCaseRequest,
) (*models.Case, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateCase(ctx, models.ActorFor(user), req)
}

// GetCase returns a live case (pass-through).
func (s *CaseService) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	return s.store.GetCase(ctx, caseID)
}

// ListCases returns a paginated list of live cases (pass-through).
func (s *CaseService) ListCases(ctx context.Context, limit, offset int) ([]models.Case, bool, error) {
	return s.store.ListCases(ctx, limit, offset)
}

// AddMember assigns a user to a case. Only privileged roles or existing
// members may change the roster.
func (s *CaseService) AddMember(ctx context.Context, user *models.User, caseID, userID string) error {
	if err := s.authorizeRosterChange(ctx, user, caseID); err != nil {
		return err
	}

	return s.store.AddMember(ctx, models.ActorFor(user), caseID, userID)
}

// RemoveMember removes a user from a case under the same policy as AddMember.
func (s *CaseService) RemoveMember(ctx context.Context, user *models.User, caseID, userID string) error {
	if err := s.authorizeRosterChange(ctx, user, caseID); err != nil {
		return err
	}

	return s.store.RemoveMember(ctx, models.ActorFor(user), caseID, userID)
}

func (s *CaseService) authorizeRosterChange(ctx context.Context, user *models.User, caseID string) error {
	// Resolve the case first so an unknown id is NotFound, not Forbidden.
	if _, err := s.store.GetCase(ctx, caseID); err != nil {
		return err
	}

	if user.Role.Privileged() {
		return nil
	}

	member, err := s.store.IsMember(ctx, caseID, user.ID)
	if err != nil {
		return err
	}
	if !member {
		return models.ErrForbidden
	}

	return nil
}
