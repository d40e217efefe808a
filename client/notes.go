package client

import (
	"context"
	"net/url"
	"strconv"
)

// NoteService handles note operations under a case.
type NoteService struct {
	c *Client
}

// noteListResponse wraps the paginated note list response.
type noteListResponse struct {
	Notes   []Note `json:"notes"`
	HasMore bool   `json:"has_more"`
}

func notePath(caseID, noteID string) string {
	p := "/api/v1/cases/" + url.PathEscape(caseID) + "/notes"
	if noteID != "" {
		p += "/" + url.PathEscape(noteID)
	}
	return p
}

// List returns live notes on a case.
func (s *NoteService) List(ctx context.Context, caseID string, limit, offset int) ([]Note, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp noteListResponse
	if err := s.c.get(ctx, notePath(caseID, ""), params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Notes, resp.HasMore, nil
}

// Get returns one live note.
func (s *NoteService) Get(ctx context.Context, caseID, noteID string) (*Note, error) {
	var note Note
	if err := s.c.get(ctx, notePath(caseID, noteID), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create adds a note to a case.
func (s *NoteService) Create(ctx context.Context, caseID string, req CreateNoteRequest) (*Note, error) {
	var note Note
	if err := s.c.post(ctx, notePath(caseID, ""), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Patch applies a partial update to a note.
func (s *NoteService) Patch(ctx context.Context, caseID, noteID string, fields map[string]any) (*Note, error) {
	var note Note
	if err := s.c.patch(ctx, notePath(caseID, noteID), fields, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note. The result reports which deletion tier ran.
func (s *NoteService) Delete(ctx context.Context, caseID, noteID string) (*DeleteResult, error) {
	var res DeleteResult
	if err := s.c.del(ctx, notePath(caseID, noteID), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
