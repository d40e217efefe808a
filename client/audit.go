package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// AuditService handles ledger query and verification operations.
type AuditService struct {
	c *Client
}

// auditQueryResponse wraps the paginated audit query response.
type auditQueryResponse struct {
	Records []AuditRecord `json:"records"`
	HasMore bool          `json:"has_more"`
}

// Query returns audit records matching the given options, newest-first.
func (s *AuditService) Query(ctx context.Context, opts *AuditQueryOptions) ([]AuditRecord, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Table != "" {
			params.Set("table", opts.Table)
		}
		if opts.RecordID != "" {
			params.Set("record_id", opts.RecordID)
		}
		if opts.Operation != "" {
			params.Set("operation", opts.Operation)
		}
		if opts.Since != nil {
			params.Set("since", opts.Since.Format(time.RFC3339))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp auditQueryResponse
	if err := s.c.get(ctx, "/api/v1/audit", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Records, resp.HasMore, nil
}

// Verify walks the full hash chain server-side. Requires an admin session.
func (s *AuditService) Verify(ctx context.Context) (*VerifyResult, error) {
	var result VerifyResult
	if err := s.c.get(ctx, "/api/v1/audit/verify", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
