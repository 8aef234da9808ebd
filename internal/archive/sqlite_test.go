package archive

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperengineering/studytrack/internal/types"
)

func setupTestArchive(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "studytrack.db")

	s, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProgress() *types.Progress {
	ts := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return &types.Progress{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Projects: []types.Project{
			{Name: "Ray Tracer", Lang: types.LangSystems, HoursInvested: 5, Completed: true},
			{Name: "Blog", Lang: types.LangScripting, HoursInvested: 1.5},
		},
		DailyLog: map[string][]types.LogEntry{
			"2026-02-01": {
				{
					ID:        "01JTEST000000000000000001",
					Type:      types.EventProblemsSolved,
					Payload:   json.RawMessage("{\n  \"lang\": \"scripting\",\n  \"count\": 5\n}"),
					Timestamp: ts,
				},
				{Type: types.EventDesign, Timestamp: ts.Add(time.Minute)},
			},
			"2026-02-02": {
				{ID: "01JTEST000000000000000002", Type: types.EventMock, Payload: json.RawMessage(`{}`), Timestamp: ts.Add(24 * time.Hour)},
			},
		},
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	s := setupTestArchive(t)

	for _, table := range []string{"events", "projects"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "studytrack.db")
	ctx := context.Background()

	first, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, err := first.Export(ctx, sampleProgress()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	first.Close()

	second, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer second.Close()

	projects, err := second.Projects(ctx)
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("len(projects) = %d, want 2 after reopen", len(projects))
	}
}

func TestExport_RoundTrip(t *testing.T) {
	s := setupTestArchive(t)
	ctx := context.Background()
	doc := sampleProgress()

	result, err := s.Export(ctx, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.Events != 3 || result.Projects != 2 {
		t.Errorf("Export() = %+v, want 3 events, 2 projects", result)
	}

	events, err := s.Events(ctx, "2026-02-01")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].ID != "01JTEST000000000000000001" || events[0].Type != types.EventProblemsSolved {
		t.Errorf("events[0] = %+v", events[0])
	}
	if string(events[0].Payload) != `{"lang":"scripting","count":5}` {
		t.Errorf("payload = %s, want compact JSON", events[0].Payload)
	}
	if events[1].ID != "" {
		t.Errorf("events[1].ID = %q, want empty", events[1].ID)
	}
	if string(events[1].Payload) != "{}" {
		t.Errorf("empty payload stored as %s, want {}", events[1].Payload)
	}
	if !events[1].Timestamp.Equal(doc.DailyLog["2026-02-01"][1].Timestamp) {
		t.Errorf("timestamp = %v", events[1].Timestamp)
	}

	projects, err := s.Projects(ctx)
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	if projects[0].Name != "Blog" || projects[1].Name != "Ray Tracer" {
		t.Errorf("projects not ordered by name: %+v", projects)
	}
	if !projects[1].Completed || projects[1].HoursInvested != 5 {
		t.Errorf("Ray Tracer = %+v", projects[1])
	}
	if projects[0].Completed {
		t.Error("Blog should not be completed")
	}
}

func TestExport_Idempotent(t *testing.T) {
	s := setupTestArchive(t)
	ctx := context.Background()
	doc := sampleProgress()

	if _, err := s.Export(ctx, doc); err != nil {
		t.Fatalf("first Export() error = %v", err)
	}

	doc.Projects[1].HoursInvested = 4
	doc.DailyLog["2026-02-02"] = append(doc.DailyLog["2026-02-02"], types.LogEntry{
		Type: types.EventMock, Timestamp: time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC),
	})

	if _, err := s.Export(ctx, doc); err != nil {
		t.Fatalf("second Export() error = %v", err)
	}

	counts, err := s.EventCounts(ctx)
	if err != nil {
		t.Fatalf("EventCounts() error = %v", err)
	}
	want := map[types.EventType]int{
		types.EventProblemsSolved: 1,
		types.EventDesign:         1,
		types.EventMock:           2,
	}
	for typ, n := range want {
		if counts[typ] != n {
			t.Errorf("counts[%s] = %d, want %d", typ, counts[typ], n)
		}
	}

	projects, err := s.Projects(ctx)
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	if projects[0].HoursInvested != 4 {
		t.Errorf("Blog hours = %v, want 4 after re-export", projects[0].HoursInvested)
	}
}

func TestExport_EmptyDocument(t *testing.T) {
	s := setupTestArchive(t)

	result, err := s.Export(context.Background(), &types.Progress{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.Events != 0 || result.Projects != 0 {
		t.Errorf("Export() = %+v, want zero counts", result)
	}
}
