package client

import (
	"context"
	"net/url"
	"strconv"
)

// CaseService handles case and roster operations.
type CaseService struct {
	c *Client
}

// caseListResponse wraps the paginated case list response.
type caseListResponse struct {
	Cases   []Case `json:"cases"`
	HasMore bool   `json:"has_more"`
}

// List returns cases, newest-first.
func (s *CaseService) List(ctx context.Context, limit, offset int) ([]Case, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp caseListResponse
	if err := s.c.get(ctx, "/api/v1/cases", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Cases, resp.HasMore, nil
}

// Get returns one live case by id.
func (s *CaseService) Get(ctx context.Context, caseID string) (*Case, error) {
	var kase Case
	if err := s.c.get(ctx, "/api/v1/cases/"+url.PathEscape(caseID), nil, &kase); err != nil {
		return nil, err
	}
	return &kase, nil
}

// Create opens a new case.
func (s *CaseService) Create(ctx context.Context, req CreateCaseRequest) (*Case, error) {
	var kase Case
	if err := s.c.post(ctx, "/api/v1/cases", req, &kase); err != nil {
		return nil, err
	}
	return &kase, nil
}

// AddMember assigns a user to the case roster.
func (s *CaseService) AddMember(ctx context.Context, caseID, userID string) error {
	return s.c.post(ctx, "/api/v1/cases/"+url.PathEscape(caseID)+"/members/"+url.PathEscape(userID), nil, nil)
}

// RemoveMember removes a user from the case roster.
func (s *CaseService) RemoveMember(ctx context.Context, caseID, userID string) error {
	return s.c.del(ctx, "/api/v1/cases/"+url.PathEscape(caseID)+"/members/"+url.PathEscape(userID), nil)
}
