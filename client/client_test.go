package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithToken("test-token"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "1.2.0", SchemaVersion: 3})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
	if resp.SchemaVersion != 3 {
		t.Errorf("got schema version %d, want 3", resp.SchemaVersion)
	}
}

func TestAuthHeader(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("Authorization = %q", got)
			}
			jsonResponse(w, 200, HealthResponse{Status: "ok"})
		},
	})
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error: %v", err)
	}
}

func TestCaseList(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/cases": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "5" {
				t.Errorf("limit = %q, want 5", got)
			}
			jsonResponse(w, 200, map[string]any{
				"cases":    []Case{{ID: "c1", Title: "Acme v. Initech"}},
				"has_more": true,
			})
		},
	})
	cases, hasMore, err := c.Cases.List(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(cases) != 1 || cases[0].Title != "Acme v. Initech" {
		t.Errorf("cases = %+v", cases)
	}
	if !hasMore {
		t.Error("has_more = false, want true")
	}
}

func TestDocumentDelete_Result(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"DELETE /api/v1/cases/c1/documents/d1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, DeleteResult{Message: "document deleted", Success: true, Method: "soft_delete"})
		},
	})
	res, err := c.Documents.Delete(context.Background(), "c1", "d1")
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if !res.Success || res.Method != "soft_delete" {
		t.Errorf("result = %+v", res)
	}
}

func TestAPIError(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/cases/missing": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]string{"code": "not_found", "error": "case not found", "request_id": "req-1"})
		},
	})
	_, err := c.Cases.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false: %v", err)
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Message != "case not found" || apiErr.RequestID != "req-1" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestAuditVerify(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/audit/verify": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, VerifyResult{IsValid: false, Checked: 12, BrokenAt: "rec-13"})
		},
	})
	result, err := c.Audit.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if result.IsValid || result.BrokenAt != "rec-13" {
		t.Errorf("result = %+v", result)
	}
}
