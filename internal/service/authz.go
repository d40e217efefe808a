// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/caseflowhq/caseflow/internal/models"
)

// MembershipChecker reports whether a user is assigned to a case.
type MembershipChecker interface {
	IsMember(ctx context.Context, caseID, userID string) (bool, error)
}

// canDelete decides whether a user may delete a case-scoped resource:
// privileged role, creator of the resource, or member of the case. Callers
// resolve the resource first so an unknown id surfaces as NotFound, never
// as Forbidden.
func canDelete(ctx context.Context, members MembershipChecker, user *models.User, caseID, createdBy string) (bool, error) {
	if user.Role.Privileged() {
		return true, nil
	}

	if user.ID == createdBy {
		return true, nil
	}

	return members.IsMember(ctx, caseID, user.ID)
}
