package client

import (
	"context"
	"net/url"
	"strconv"
)

// TimeEntryService handles time entry operations under a case.
type TimeEntryService struct {
	c *Client
}

// timeEntryListResponse wraps the paginated time entry list response.
type timeEntryListResponse struct {
	TimeEntries []TimeEntry `json:"time_entries"`
	HasMore     bool        `json:"has_more"`
}

func timeEntryPath(caseID, entryID string) string {
	p := "/api/v1/cases/" + url.PathEscape(caseID) + "/time-entries"
	if entryID != "" {
		p += "/" + url.PathEscape(entryID)
	}
	return p
}

// List returns live time entries on a case.
func (s *TimeEntryService) List(ctx context.Context, caseID string, limit, offset int) ([]TimeEntry, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp timeEntryListResponse
	if err := s.c.get(ctx, timeEntryPath(caseID, ""), params, &resp); err != nil {
		return nil, false, err
	}
	return resp.TimeEntries, resp.HasMore, nil
}

// Get returns one live time entry.
func (s *TimeEntryService) Get(ctx context.Context, caseID, entryID string) (*TimeEntry, error) {
	var entry TimeEntry
	if err := s.c.get(ctx, timeEntryPath(caseID, entryID), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create logs time against a case.
func (s *TimeEntryService) Create(ctx context.Context, caseID string, req CreateTimeEntryRequest) (*TimeEntry, error) {
	var entry TimeEntry
	if err := s.c.post(ctx, timeEntryPath(caseID, ""), req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Patch applies a partial update to a time entry.
func (s *TimeEntryService) Patch(ctx context.Context, caseID, entryID string, fields map[string]any) (*TimeEntry, error) {
	var entry TimeEntry
	if err := s.c.patch(ctx, timeEntryPath(caseID, entryID), fields, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes a time entry. The result reports which deletion tier ran.
func (s *TimeEntryService) Delete(ctx context.Context, caseID, entryID string) (*DeleteResult, error) {
	var res DeleteResult
	if err := s.c.del(ctx, timeEntryPath(caseID, entryID), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
