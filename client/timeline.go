package client

import (
	"context"
	"net/url"
)

// TimelineService handles case timeline reconstruction.
type TimelineService struct {
	c *Client
}

// Get returns the merged audit-and-live timeline for one case.
func (s *TimelineService) Get(ctx context.Context, caseID string) (*TimelineResult, error) {
	var result TimelineResult
	if err := s.c.get(ctx, "/api/v1/cases/"+url.PathEscape(caseID)+"/timeline", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
