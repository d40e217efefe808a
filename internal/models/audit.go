package models

import (
	"encoding/json"
	"time"
)

// Audit operations as written by the datastore trigger layer.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Tables whose mutations are audit-tracked.
var TrackedTables = []string{
	"cases", "case_members", "documents", "tasks", "notes", "time_entries",
}

// AuditRecord is one link of the tamper-evidence chain. Records are append-only:
// the application never updates or deletes them.
type AuditRecord struct {
	ID string `json:"id"`
	// ChainPos is the record's position in the chain's total order. Assigned
	// by the datastore under the append lock; linkage always follows it,
	// whereas created_at reflects transaction start and can disagree with
	// append order under concurrency.
	ChainPos      int64          `json:"chain_pos"`
	TableName     string         `json:"table_name"`
	RecordID      string         `json:"record_id"`
	Operation     string         `json:"operation"`
	Actor         Actor          `json:"actor"`
	OldData       map[string]any `json:"old_data,omitempty"`
	NewData       map[string]any `json:"new_data,omitempty"`
	ChangedFields FieldList      `json:"changed_fields,omitempty"`
	DataHash      string         `json:"data_hash"`
	PreviousHash  string         `json:"previous_hash,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// FieldList normalizes the changed_fields column at the read boundary. Legacy
// rows store a JSON-encoded string ("[\"a\",\"b\"]") instead of a jsonb array;
// both decode to the same slice. On parse failure the raw text is kept as a
// single element so one malformed historical record cannot hide the rest.
type FieldList []string

// UnmarshalJSON implements json.Unmarshaler with parse-or-passthrough semantics.
func (f *FieldList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(s), &nested); err == nil {
			*f = nested
			return nil
		}
		*f = FieldList{s}
		return nil
	}

	*f = FieldList{string(data)}
	return nil
}

// Contains reports whether the list includes the given field name.
func (f FieldList) Contains(field string) bool {
	for _, v := range f {
		if v == field {
			return true
		}
	}

	return false
}

// AuditQueryOpts holds filters for querying the audit ledger. All filters are
// AND-combined; results are newest-first.
type AuditQueryOpts struct {
	TableName string
	RecordID  string
	Operation string
	Since     *time.Time
	Limit     int
	Offset    int
}

// VerifyResult reports the outcome of a full chain verification walk.
type VerifyResult struct {
	IsValid      bool   `json:"is_valid"`
	Checked      int    `json:"checked"`
	BrokenAt     string `json:"broken_at,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
