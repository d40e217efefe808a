package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/metrics"
	"github.com/caseflowhq/caseflow/internal/models"
)

// ChatEvent is an inbound message from the chat integration. Messages posted
// to a case channel become notes on that case.
type ChatEvent struct {
	CaseID  string `json:"case_id"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
	UserID  string `json:"user_id"`
}

// UserResolver resolves a chat user to a practice user.
type UserResolver interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// WebhookService converts chat events into case notes.
type WebhookService struct {
	notes NoteStore
	cases CaseStore
	users UserResolver
	log   *logrus.Logger
}

// NewWebhookService creates a WebhookService.
func NewWebhookService(notes NoteStore, cases CaseStore, users UserResolver, log *logrus.Logger) *WebhookService {
	return &WebhookService{notes: notes, cases: cases, users: users, log: log}
}

// HandleChatEvent validates an inbound chat event and records it as a note.
// The originating channel is kept on the note's source field.
func (s *WebhookService) HandleChatEvent(ctx context.Context, event ChatEvent) (*models.Note, error) {
	if event.CaseID == "" {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return nil, models.ErrMissingCaseID
	}
	if event.Text == "" {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return nil, models.ErrMissingContent
	}

	user, err := s.users.GetUser(ctx, event.UserID)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("resolving chat user: %w", err)
	}

	if _, err := s.cases.GetCase(ctx, event.CaseID); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	req := models.CreateNoteRequest{
		Content: event.Text,
		Source:  event.Channel,
	}
	if err := req.Validate(); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	note, err := s.notes.CreateNote(ctx, models.ActorFor(user), event.CaseID, req)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.WebhookEventsTotal.WithLabelValues("accepted").Inc()
	s.log.WithFields(logrus.Fields{
		"case_id": event.CaseID,
		"channel": event.Channel,
		"note_id": note.ID,
	}).Info("chat event recorded as note")

	return note, nil
}
