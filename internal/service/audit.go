package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/ledger"
	"github.com/caseflowhq/caseflow/internal/metrics"
	"github.com/caseflowhq/caseflow/internal/models"
)

// AuditStore is the data-access interface AuditService depends on. All
// methods are reads; the ledger is append-only from the application's point
// of view.
type AuditStore interface {
	QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
	ListChain(ctx context.Context) ([]models.AuditRecord, error)
}

// AuditService exposes ledger queries and chain verification.
type AuditService struct {
	store AuditStore
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditStore, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// Query returns filtered audit records, newest-first (pass-through).
func (s *AuditService) Query(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.AuditRecord, bool, error) {
	return s.store.QueryAudit(ctx, opts)
}

// VerifyChain loads the full ledger in creation order and walks it. A broken
// chain is an operational finding, not an error: the result carries the first
// point of divergence and the call itself succeeds.
func (s *AuditService) VerifyChain(ctx context.Context) (*models.VerifyResult, error) {
	records, err := s.store.ListChain(ctx)
	if err != nil {
		return nil, err
	}

	result := ledger.VerifyChain(records)
	if !result.IsValid {
		metrics.ChainVerifyFailures.Inc()
		s.log.WithFields(logrus.Fields{
			"broken_at": result.BrokenAt,
			"checked":   result.Checked,
		}).Error("audit chain verification failed")
	}

	return &result, nil
}
