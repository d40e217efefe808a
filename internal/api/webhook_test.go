package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/caseflowhq/caseflow/internal/api"
	"github.com/caseflowhq/caseflow/internal/models"
	"github.com/caseflowhq/caseflow/internal/service"
)

const testWebhookSecret = "hunter2hunter2"

func webhookRouter(svc *mockWebhookSvc, secret string) *gin.Engine {
	h := api.NewWebhookHandler(svc, secret, testLogger())
	r := gin.New()
	r.POST("/api/v1/webhooks/chat", h.Chat)

	return r
}

func postChat(r *gin.Engine, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/webhooks/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestWebhookChat_Accepted(t *testing.T) {
	svc := &mockWebhookSvc{
		handleFn: func(_ context.Context, event service.ChatEvent) (*models.Note, error) {
			if event.CaseID != testCaseID || event.Channel != "matters-acme" {
				t.Errorf("event = %+v", event)
			}

			return &models.Note{ID: "n1", CaseID: event.CaseID, Content: event.Text, Source: event.Channel}, nil
		},
	}
	r := webhookRouter(svc, testWebhookSecret)

	w := postChat(r, testWebhookSecret, `{"case_id":"`+testCaseID+`","channel":"matters-acme","text":"filed the motion","user_id":"u1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestWebhookChat_BadSecret(t *testing.T) {
	called := false
	svc := &mockWebhookSvc{
		handleFn: func(_ context.Context, _ service.ChatEvent) (*models.Note, error) {
			called = true

			return nil, nil
		},
	}
	r := webhookRouter(svc, testWebhookSecret)

	for _, secret := range []string{"", "wrong"} {
		w := postChat(r, secret, `{"case_id":"x","text":"y"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("secret %q: status = %d, want 401", secret, w.Code)
		}
	}

	if called {
		t.Error("service must not run on a bad secret")
	}
}

func TestWebhookChat_NotConfigured(t *testing.T) {
	r := webhookRouter(&mockWebhookSvc{}, "")

	w := postChat(r, "anything", `{"case_id":"x","text":"y"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestWebhookChat_ValidationErrors(t *testing.T) {
	svc := &mockWebhookSvc{
		handleFn: func(_ context.Context, _ service.ChatEvent) (*models.Note, error) {
			return nil, models.ErrMissingContent
		},
	}
	r := webhookRouter(svc, testWebhookSecret)

	w := postChat(r, testWebhookSecret, `{"case_id":"`+testCaseID+`","text":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
