package ledger

import (
	"fmt"

	"github.com/caseflowhq/caseflow/internal/models"
)

// VerifyChain walks audit records in chain order and checks both links of
// the tamper-evidence contract: each record's previous_hash must equal its
// predecessor's data_hash, and each record's stored data_hash must match an
// independent recomputation.
//
// The chain is global across all tracked tables, totally ordered by
// chain_pos. Callers must pass records sorted ascending by it; created_at is
// not a substitute, since it reflects transaction start rather than append
// order. The walk is sequential and never repairs or rewrites records.
func VerifyChain(records []models.AuditRecord) models.VerifyResult {
	var prevHash string

	for i := range records {
		r := &records[i]

		if r.PreviousHash != prevHash {
			return models.VerifyResult{
				IsValid:  false,
				Checked:  i,
				BrokenAt: r.ID,
				ErrorMessage: fmt.Sprintf(
					"previous_hash mismatch at record %s: stored %q, predecessor data_hash %q",
					r.ID, truncate(r.PreviousHash), truncate(prevHash),
				),
			}
		}

		if recomputed := ComputeHash(r); recomputed != r.DataHash {
			return models.VerifyResult{
				IsValid:  false,
				Checked:  i,
				BrokenAt: r.ID,
				ErrorMessage: fmt.Sprintf(
					"data_hash mismatch at record %s: stored %q, recomputed %q",
					r.ID, truncate(r.DataHash), truncate(recomputed),
				),
			}
		}

		prevHash = r.DataHash
	}

	return models.VerifyResult{IsValid: true, Checked: len(records)}
}

// truncate shortens a hash for error messages.
func truncate(h string) string {
	if len(h) > 12 {
		return h[:12] + "..."
	}

	return h
}
