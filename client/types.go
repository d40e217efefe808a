package client

import "time"

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Case is a legal matter.
type Case struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ClientName  string     `json:"client_name"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Description string     `json:"description,omitempty"`
}

// CreateCaseRequest is the payload for opening a case.
type CreateCaseRequest struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	ClientName  string `json:"client_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Document is a file attached to a case.
type Document struct {
	ID         string     `json:"id"`
	CaseID     string     `json:"case_id"`
	Title      string     `json:"title"`
	FilePath   string     `json:"file_path,omitempty"`
	FileSize   int64      `json:"file_size,omitempty"`
	MimeType   string     `json:"mime_type,omitempty"`
	UploadedBy string     `json:"uploaded_by"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateDocumentRequest is the payload for registering a document.
type CreateDocumentRequest struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	FilePath string `json:"file_path,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// Task is a unit of work on a case.
type Task struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"case_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Note is free-form text on a case.
type Note struct {
	ID        string     `json:"id"`
	CaseID    string     `json:"case_id"`
	Content   string     `json:"content"`
	Source    string     `json:"source,omitempty"`
	CreatedBy string     `json:"created_by"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateNoteRequest is the payload for creating a note.
type CreateNoteRequest struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// TimeEntry records billable time against a case.
type TimeEntry struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"case_id"`
	UserID      string     `json:"user_id"`
	Description string     `json:"description"`
	Minutes     int        `json:"minutes"`
	WorkedOn    time.Time  `json:"worked_on"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTimeEntryRequest is the payload for logging time.
type CreateTimeEntryRequest struct {
	ID          string    `json:"id,omitempty"`
	Description string    `json:"description"`
	Minutes     int       `json:"minutes"`
	WorkedOn    time.Time `json:"worked_on"`
}

// DeleteResult is the server's terminal report for a deletion request.
type DeleteResult struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Method  string `json:"method"`
	Warning string `json:"warning,omitempty"`
}

// Actor is the identity snapshot on an audit record.
type Actor struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// AuditRecord is one link of the tamper-evidence chain.
type AuditRecord struct {
	ID            string         `json:"id"`
	ChainPos      int64          `json:"chain_pos"`
	TableName     string         `json:"table_name"`
	RecordID      string         `json:"record_id"`
	Operation     string         `json:"operation"`
	Actor         Actor          `json:"actor"`
	OldData       map[string]any `json:"old_data,omitempty"`
	NewData       map[string]any `json:"new_data,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
	DataHash      string         `json:"data_hash"`
	PreviousHash  string         `json:"previous_hash,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// AuditQueryOptions filters an audit ledger query.
type AuditQueryOptions struct {
	Table     string
	RecordID  string
	Operation string
	Since     *time.Time
	Limit     int
	Offset    int
}

// VerifyResult reports the outcome of a chain verification walk.
type VerifyResult struct {
	IsValid      bool   `json:"is_valid"`
	Checked      int    `json:"checked"`
	BrokenAt     string `json:"broken_at,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// TimelineEvent is one rendered entry of a case timeline.
type TimelineEvent struct {
	ID                 string    `json:"id"`
	TableName          string    `json:"table_name"`
	RecordID           string    `json:"record_id"`
	Operation          string    `json:"operation"`
	EffectiveOperation string    `json:"effective_operation"`
	IsDeleted          bool      `json:"is_deleted"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Icon               string    `json:"icon"`
	Color              string    `json:"color"`
	Actor              Actor     `json:"actor"`
	ChangedFields      []string  `json:"changed_fields,omitempty"`
	Current            any       `json:"current,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// TimelineStats summarizes a case timeline.
type TimelineStats struct {
	TotalEvents    int             `json:"total_events"`
	DeletedItems   int             `json:"deleted_items"`
	ActiveItems    map[string]int  `json:"active_items"`
	RecentActivity []TimelineEvent `json:"recent_activity"`
}

// TimelineResult is the full timeline response for one case.
type TimelineResult struct {
	Timeline []TimelineEvent `json:"timeline"`
	Stats    TimelineStats   `json:"stats"`
}
