package client

import (
	"context"
	"net/url"
	"strconv"
)

// DocumentService handles document operations under a case.
type DocumentService struct {
	c *Client
}

// documentListResponse wraps the paginated document list response.
type documentListResponse struct {
	Documents []Document `json:"documents"`
	HasMore   bool       `json:"has_more"`
}

func documentPath(caseID, docID string) string {
	p := "/api/v1/cases/" + url.PathEscape(caseID) + "/documents"
	if docID != "" {
		p += "/" + url.PathEscape(docID)
	}
	return p
}

// List returns live documents on a case.
func (s *DocumentService) List(ctx context.Context, caseID string, limit, offset int) ([]Document, bool, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var resp documentListResponse
	if err := s.c.get(ctx, documentPath(caseID, ""), params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Documents, resp.HasMore, nil
}

// Get returns one live document.
func (s *DocumentService) Get(ctx context.Context, caseID, docID string) (*Document, error) {
	var doc Document
	if err := s.c.get(ctx, documentPath(caseID, docID), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create registers an uploaded document on a case.
func (s *DocumentService) Create(ctx context.Context, caseID string, req CreateDocumentRequest) (*Document, error) {
	var doc Document
	if err := s.c.post(ctx, documentPath(caseID, ""), req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Patch applies a partial update to a document.
func (s *DocumentService) Patch(ctx context.Context, caseID, docID string, fields map[string]any) (*Document, error) {
	var doc Document
	if err := s.c.patch(ctx, documentPath(caseID, docID), fields, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document. The result reports which deletion tier ran.
func (s *DocumentService) Delete(ctx context.Context, caseID, docID string) (*DeleteResult, error) {
	var res DeleteResult
	if err := s.c.del(ctx, documentPath(caseID, docID), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
