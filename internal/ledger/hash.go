// Package ledger implements the hash-chained audit ledger: deterministic
// content digests, chain verification, and the canonical serialization shared
// with the database trigger layer that writes the records.
package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/caseflowhq/caseflow/internal/models"
)

// ComputeHash returns the content digest of an audit record. The input covers
// every substantive field except data_hash itself; previous_hash is included
// so a record cannot be re-linked without changing its own digest.
//
// The serialization here is the contract with the record_audit() trigger in
// the migrations: both sides must produce byte-identical input or independent
// recomputation breaks.
func ComputeHash(r *models.AuditRecord) string {
	parts := []string{
		r.TableName,
		r.RecordID,
		r.Operation,
		r.Actor.UserID,
		r.Actor.Email,
		r.Actor.Role,
		canonicalJSON(r.OldData),
		canonicalJSON(r.NewData),
		canonicalFields(r.ChangedFields),
		r.PreviousHash,
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))

	return hex.EncodeToString(sum[:])
}

// canonicalJSON serializes a row snapshot as sorted key=value pairs joined by
// commas, each value in its compact JSON form. The trigger reproduces this
// with jsonb_each ordered by key; whole-object marshalling is avoided because
// jsonb's object text layout differs from encoding/json's.
//
// Row snapshots are flat (to_jsonb of a table row) with string, integer,
// boolean, and null values; those scalar forms print identically on both
// sides. A nil snapshot (INSERT old_data, DELETE new_data) is the empty string.
func canonicalJSON(m map[string]any) string {
	if m == nil {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder

	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(jsonValue(m[k]))
	}

	return b.String()
}

// jsonValue renders one value as compact JSON without HTML escaping, matching
// jsonb's text form for scalars.
func jsonValue(v any) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// canonicalFields serializes changed_fields sorted and comma-joined.
func canonicalFields(fields models.FieldList) string {
	if len(fields) == 0 {
		return ""
	}

	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)

	return strings.Join(sorted, ",")
}
