package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caseflowhq/caseflow/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

type mockAuditSource struct {
	records []models.AuditRecord
	err     error
}

func (m *mockAuditSource) FetchRecent(_ context.Context, _ int) ([]models.AuditRecord, error) {
	return m.records, m.err
}

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func rec(id, table, recordID, op string, age time.Duration, mut ...func(*models.AuditRecord)) models.AuditRecord {
	r := models.AuditRecord{
		ID:        id,
		TableName: table,
		RecordID:  recordID,
		Operation: op,
		Actor:     models.Actor{UserID: "u1", Email: "ana@firm.test", Name: "Ana", Role: "lawyer"},
		CreatedAt: baseTime.Add(-age),
	}
	for _, m := range mut {
		m(&r)
	}
	return r
}

func withPayload(oldData, newData map[string]any, changed ...string) func(*models.AuditRecord) {
	return func(r *models.AuditRecord) {
		r.OldData = oldData
		r.NewData = newData
		r.ChangedFields = changed
	}
}

func TestBuild_FiltersToCase(t *testing.T) {
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "cases", "c1", models.OpInsert, 5*time.Minute,
			withPayload(nil, map[string]any{"title": "Smith v. Jones"})),
		rec("a2", "documents", "d1", models.OpInsert, 4*time.Minute,
			withPayload(nil, map[string]any{"case_id": "c1", "title": "Brief"})),
		rec("a3", "documents", "d2", models.OpInsert, 3*time.Minute,
			withPayload(nil, map[string]any{"case_id": "c2", "title": "Other brief"})),
		rec("a4", "cases", "c2", models.OpInsert, 2*time.Minute,
			withPayload(nil, map[string]any{"title": "Doe v. Roe"})),
		rec("a5", "case_members", "m1", models.OpInsert, time.Minute,
			withPayload(nil, map[string]any{"case_id": "c1", "user_id": "u2"})),
	}}

	b := NewBuilder(src, nil, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Timeline) != 3 {
		t.Fatalf("timeline length = %d, want 3", len(res.Timeline))
	}
	for _, e := range res.Timeline {
		if e.ID == "a3" || e.ID == "a4" {
			t.Errorf("event %s belongs to a different case", e.ID)
		}
	}
}

func TestBuild_NewestFirst(t *testing.T) {
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "cases", "c1", models.OpInsert, 3*time.Hour,
			withPayload(nil, map[string]any{"title": "X"})),
		rec("a2", "cases", "c1", models.OpUpdate, time.Hour,
			withPayload(map[string]any{"title": "X"}, map[string]any{"title": "Y"}, "title")),
		rec("a3", "cases", "c1", models.OpUpdate, 2*time.Hour,
			withPayload(map[string]any{"title": "X"}, map[string]any{"title": "X"}, "status")),
	}}

	b := NewBuilder(src, nil, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a2", "a3", "a1"}
	for i, id := range want {
		if res.Timeline[i].ID != id {
			t.Errorf("timeline[%d] = %s, want %s", i, res.Timeline[i].ID, id)
		}
	}
}

func TestBuild_SoftDeleteReclassified(t *testing.T) {
	now := "2026-03-10T11:00:00Z"
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "documents", "d1", models.OpUpdate, time.Minute,
			withPayload(
				map[string]any{"case_id": "c1", "title": "Brief", "deleted_at": nil},
				map[string]any{"case_id": "c1", "title": "Brief", "deleted_at": now},
				"deleted_at", "updated_at",
			)),
	}}

	// A live row still exists for d1; the reclassified event must not pick
	// it up.
	live := map[string]LiveFetch{
		"documents": func(_ context.Context, _ string) (map[string]any, error) {
			return map[string]any{"d1": models.Document{ID: "d1"}}, nil
		},
	}

	b := NewBuilder(src, live, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := res.Timeline[0]
	if e.Operation != models.OpUpdate {
		t.Errorf("operation = %s, want UPDATE preserved", e.Operation)
	}
	if e.EffectiveOperation != models.OpDelete {
		t.Errorf("effective operation = %s, want DELETE", e.EffectiveOperation)
	}
	if !e.IsDeleted {
		t.Error("expected is_deleted = true")
	}
	if e.Current != nil {
		t.Error("deleted event must not carry a live row")
	}
	if res.Stats.DeletedItems != 1 {
		t.Errorf("deleted items = %d, want 1", res.Stats.DeletedItems)
	}
}

func TestBuild_OrdinaryUpdateNotReclassified(t *testing.T) {
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "tasks", "t1", models.OpUpdate, time.Minute,
			withPayload(
				map[string]any{"case_id": "c1", "title": "File motion", "status": "pending"},
				map[string]any{"case_id": "c1", "title": "File motion", "status": "in_progress"},
				"status", "updated_at",
			)),
	}}

	b := NewBuilder(src, nil, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := res.Timeline[0]
	if e.EffectiveOperation != models.OpUpdate || e.IsDeleted {
		t.Errorf("got (%s, deleted=%v), want plain UPDATE", e.EffectiveOperation, e.IsDeleted)
	}
}

func TestBuild_TaskCompletedLabel(t *testing.T) {
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "tasks", "t1", models.OpUpdate, time.Minute,
			withPayload(
				map[string]any{"case_id": "c1", "title": "File motion", "status": "in_progress"},
				map[string]any{"case_id": "c1", "title": "File motion", "status": "completed"},
				"status",
			)),
	}}

	b := NewBuilder(src, nil, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Timeline[0].Title != `Task "File motion" completed` {
		t.Errorf("title = %q, want completed label", res.Timeline[0].Title)
	}
}

func TestBuild_AttachesLiveRows(t *testing.T) {
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "documents", "d1", models.OpInsert, time.Minute,
			withPayload(nil, map[string]any{"case_id": "c1", "title": "Brief"})),
		rec("a2", "tasks", "t1", models.OpInsert, 2*time.Minute,
			withPayload(nil, map[string]any{"case_id": "c1", "title": "File motion"})),
	}}

	doc := models.Document{ID: "d1", CaseID: "c1", Title: "Brief"}
	live := map[string]LiveFetch{
		"documents": func(_ context.Context, caseID string) (map[string]any, error) {
			if caseID != "c1" {
				t.Errorf("live fetch got case %s, want c1", caseID)
			}
			return map[string]any{"d1": doc}, nil
		},
		"tasks": func(_ context.Context, _ string) (map[string]any, error) {
			return map[string]any{}, nil
		},
	}

	b := NewBuilder(src, live, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, ok := res.Timeline[0].Current.(models.Document); !ok || got.ID != "d1" {
		t.Errorf("current = %#v, want document d1", res.Timeline[0].Current)
	}
	if res.Timeline[1].Current != nil {
		t.Error("task t1 has no live row, current must be nil")
	}
	if res.Stats.ActiveItems["documents"] != 1 {
		t.Errorf("active documents = %d, want 1", res.Stats.ActiveItems["documents"])
	}
}

func TestBuild_FetchErrorFailsWhole(t *testing.T) {
	src := &mockAuditSource{err: errors.New("connection refused")}

	b := NewBuilder(src, nil, testLogger())
	if _, err := b.Build(context.Background(), "c1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuild_LiveFetchErrorFailsWhole(t *testing.T) {
	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "documents", "d1", models.OpInsert, time.Minute,
			withPayload(nil, map[string]any{"case_id": "c1", "title": "Brief"})),
	}}
	live := map[string]LiveFetch{
		"documents": func(_ context.Context, _ string) (map[string]any, error) {
			return nil, errors.New("connection refused")
		},
	}

	b := NewBuilder(src, live, testLogger())
	if _, err := b.Build(context.Background(), "c1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuild_MalformedChangedFieldsKept(t *testing.T) {
	var fields models.FieldList
	_ = fields.UnmarshalJSON([]byte(`"not json at all`))

	src := &mockAuditSource{records: []models.AuditRecord{
		rec("a1", "notes", "n1", models.OpUpdate, time.Minute, func(r *models.AuditRecord) {
			r.OldData = map[string]any{"case_id": "c1", "content": "x"}
			r.NewData = map[string]any{"case_id": "c1", "content": "y"}
			r.ChangedFields = fields
		}),
	}}

	b := NewBuilder(src, nil, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Timeline) != 1 {
		t.Fatalf("malformed record dropped from timeline")
	}
}

func TestBuild_StatsRecentActivity(t *testing.T) {
	var records []models.AuditRecord
	for i := 0; i < 8; i++ {
		records = append(records, rec(
			string(rune('a'+i))+"1", "cases", "c1", models.OpUpdate,
			time.Duration(i)*time.Minute,
			withPayload(map[string]any{"title": "X"}, map[string]any{"title": "X"}, "title"),
		))
	}
	src := &mockAuditSource{records: records}

	b := NewBuilder(src, nil, testLogger())
	res, err := b.Build(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Stats.TotalEvents != 8 {
		t.Errorf("total events = %d, want 8", res.Stats.TotalEvents)
	}
	if len(res.Stats.RecentActivity) != 5 {
		t.Errorf("recent activity = %d, want 5", len(res.Stats.RecentActivity))
	}
	if res.Stats.RecentActivity[0].ID != res.Timeline[0].ID {
		t.Error("recent activity must lead with the newest event")
	}
}
