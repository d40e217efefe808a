package timeline

import (
	"fmt"

	"github.com/caseflowhq/caseflow/internal/models"
)

// presentation describes how one (table, effective operation) pair is rendered.
type presentation struct {
	Icon  string
	Color string
	Title func(r models.AuditRecord) string
}

type presentationKey struct {
	Table     string
	Operation string
}

// registry maps each tracked table and effective operation to its rendering.
// Lookups for unknown pairs fall back to a generic entry so a newly tracked
// table degrades gracefully instead of disappearing from the timeline.
var registry = map[presentationKey]presentation{
	{"cases", models.OpInsert}: {
		Icon: "briefcase", Color: "blue",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Case %q opened", payloadString(r, "title"))
		},
	},
	{"cases", models.OpUpdate}: {
		Icon: "briefcase", Color: "gray",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Case %q updated", payloadString(r, "title"))
		},
	},
	{"cases", models.OpDelete}: {
		Icon: "briefcase", Color: "red",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Case %q closed", payloadString(r, "title"))
		},
	},
	{"case_members", models.OpInsert}: {
		Icon: "user-plus", Color: "green",
		Title: func(r models.AuditRecord) string {
			return "Member added to case"
		},
	},
	{"case_members", models.OpDelete}: {
		Icon: "user-minus", Color: "orange",
		Title: func(r models.AuditRecord) string {
			return "Member removed from case"
		},
	},
	{"documents", models.OpInsert}: {
		Icon: "file-plus", Color: "green",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Document %q uploaded", payloadString(r, "title"))
		},
	},
	{"documents", models.OpUpdate}: {
		Icon: "file-pen", Color: "gray",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Document %q updated", payloadString(r, "title"))
		},
	},
	{"documents", models.OpDelete}: {
		Icon: "file-x", Color: "red",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Document %q deleted", payloadString(r, "title"))
		},
	},
	{"tasks", models.OpInsert}: {
		Icon: "square-check", Color: "green",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Task %q created", payloadString(r, "title"))
		},
	},
	{"tasks", models.OpUpdate}: {
		Icon: "square-pen", Color: "gray",
		Title: taskUpdateTitle,
	},
	{"tasks", models.OpDelete}: {
		Icon: "square-x", Color: "red",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Task %q deleted", payloadString(r, "title"))
		},
	},
	{"notes", models.OpInsert}: {
		Icon: "sticky-note", Color: "green",
		Title: func(r models.AuditRecord) string {
			return "Note added"
		},
	},
	{"notes", models.OpUpdate}: {
		Icon: "sticky-note", Color: "gray",
		Title: func(r models.AuditRecord) string {
			return "Note edited"
		},
	},
	{"notes", models.OpDelete}: {
		Icon: "sticky-note", Color: "red",
		Title: func(r models.AuditRecord) string {
			return "Note deleted"
		},
	},
	{"time_entries", models.OpInsert}: {
		Icon: "clock", Color: "green",
		Title: func(r models.AuditRecord) string {
			return fmt.Sprintf("Time logged: %s", payloadString(r, "description"))
		},
	},
	{"time_entries", models.OpUpdate}: {
		Icon: "clock", Color: "gray",
		Title: func(r models.AuditRecord) string {
			return "Time entry updated"
		},
	},
	{"time_entries", models.OpDelete}: {
		Icon: "clock", Color: "red",
		Title: func(r models.AuditRecord) string {
			return "Time entry deleted"
		},
	},
}

var genericPresentation = presentation{
	Icon: "circle", Color: "gray",
	Title: func(r models.AuditRecord) string {
		return fmt.Sprintf("%s %s", r.TableName, r.Operation)
	},
}

// presentationFor resolves the rendering for a record given its effective
// operation (which may differ from r.Operation after reclassification).
func presentationFor(r models.AuditRecord, effectiveOp string) presentation {
	if p, ok := registry[presentationKey{r.TableName, effectiveOp}]; ok {
		return p
	}

	return genericPresentation
}

// taskUpdateTitle special-cases a status transition into "completed", which
// reads better than the generic update label.
func taskUpdateTitle(r models.AuditRecord) string {
	if r.ChangedFields.Contains("status") &&
		payloadString(r, "status") == models.TaskStatusCompleted {
		return fmt.Sprintf("Task %q completed", payloadString(r, "title"))
	}

	return fmt.Sprintf("Task %q updated", payloadString(r, "title"))
}

// payloadString reads a string field from the record's new payload, falling
// back to the old payload for DELETE records which carry no new data.
func payloadString(r models.AuditRecord, key string) string {
	if v, ok := r.NewData[key].(string); ok {
		return v
	}
	if v, ok := r.OldData[key].(string); ok {
		return v
	}

	return ""
}
