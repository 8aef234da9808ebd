package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hyperengineering/studytrack/internal/types"
)

var (
	_ PlanLoader         = (*PlanStore)(nil)
	_ ProgressRepository = (*ProgressStore)(nil)
)

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	for _, sentinel := range []error{ErrInvalidPlan, ErrInvalidProgress} {
		wrapped := fmt.Errorf("load failed: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("errors.Is should match wrapped %v", sentinel)
		}
	}
}

func TestDefaultPlan_HasTwelveMonths(t *testing.T) {
	plan := DefaultPlan()
	if len(plan.Months) != types.PlanMonths {
		t.Fatalf("len(Months) = %d, want %d", len(plan.Months), types.PlanMonths)
	}
	for i, m := range plan.Months {
		if m.Focus == "" {
			t.Errorf("month %d has empty focus", i+1)
		}
		if len(m.Daily) == 0 {
			t.Errorf("month %d has no daily targets", i+1)
		}
		if len(m.Resources) == 0 {
			t.Errorf("month %d has no resources", i+1)
		}
	}
}

func TestPlanStore_Load_MissingFileWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")

	plan, err := NewPlanStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(plan, DefaultPlan()) {
		t.Error("Load() on missing file should return the default plan")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default plan was not persisted: %v", err)
	}
}

func TestPlanStore_Load_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")

	custom := DefaultPlan()
	custom.Months[0].Focus = "Custom focus"
	if err := writeJSON(path, custom); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	plan, err := NewPlanStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if plan.Months[0].Focus != "Custom focus" {
		t.Errorf("Months[0].Focus = %q, want %q", plan.Months[0].Focus, "Custom focus")
	}
}

func TestPlanStore_Load_UnusableFileReplaced(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all"},
		{"wrong month count", `{"months":[{"focus":"only one"}]}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			plan, err := NewPlanStore(path).Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(plan.Months) != types.PlanMonths {
				t.Errorf("len(Months) = %d, want %d", len(plan.Months), types.PlanMonths)
			}

			var onDisk types.Plan
			if err := readJSON(path, &onDisk); err != nil {
				t.Fatalf("persisted default unreadable: %v", err)
			}
			if len(onDisk.Months) != types.PlanMonths {
				t.Errorf("persisted plan has %d months, want %d", len(onDisk.Months), types.PlanMonths)
			}
		})
	}
}

func TestProgressStore_Load_MissingFileWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "progress.json")
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	s := NewProgressStore(path, WithClock(func() time.Time { return fixed }))

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !doc.StartDate.Equal(fixed) {
		t.Errorf("StartDate = %v, want %v", doc.StartDate, fixed)
	}
	if doc.Stats != (types.Stats{}) {
		t.Errorf("Stats = %+v, want zero value", doc.Stats)
	}
	if len(doc.Projects) != 0 || len(doc.DailyLog) != 0 {
		t.Error("default document should have no projects and no daily log")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default progress was not persisted: %v", err)
	}
}

func TestProgressStore_Load_UnusableFileReplaced(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "{{{"},
		{"no start date", `{"stats":{"designSessions":4}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "progress.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			doc, err := NewProgressStore(path).Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if doc.StartDate.IsZero() {
				t.Error("replacement document should have a start date")
			}
			if doc.Stats.DesignSessions != 0 {
				t.Errorf("DesignSessions = %d, want 0", doc.Stats.DesignSessions)
			}
		})
	}
}

func TestProgressStore_Load_NullCollectionsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	content := `{"startDate":"2026-01-01T00:00:00Z","projects":null,"dailyLog":null}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewProgressStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Projects == nil {
		t.Error("Projects should be non-nil")
	}
	if doc.DailyLog == nil {
		t.Error("DailyLog should be non-nil")
	}
}

func TestProgressStore_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s := NewProgressStore(path)

	ts := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)
	want := &types.Progress{
		StartDate: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		Stats: types.Stats{
			Scripting:      types.LangStats{ProblemsSolved: 12, ProjectsCompleted: 1, HoursInvested: 7.5},
			Systems:        types.LangStats{ProblemsSolved: 4, HoursInvested: 3},
			DesignSessions: 2,
			MockInterviews: 1,
		},
		Projects: []types.Project{
			{Name: "Todo CLI", Lang: types.LangScripting, HoursInvested: 7.5, Completed: true},
			{Name: "Ray Tracer", Lang: types.LangSystems, HoursInvested: 3},
		},
		DailyLog: map[string][]types.LogEntry{
			"2026-02-10": {
				{
					ID:        "01JTEST000000000000000000",
					Type:      types.EventProblemsSolved,
					Payload:   json.RawMessage(`{"lang":"scripting","count":5,"difficulty":"medium"}`),
					Timestamp: ts,
				},
				{Type: types.EventDesign, Payload: json.RawMessage(`{}`), Timestamp: ts},
			},
		},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !got.StartDate.Equal(want.StartDate) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, want.StartDate)
	}
	if got.Stats != want.Stats {
		t.Errorf("Stats = %+v, want %+v", got.Stats, want.Stats)
	}
	if !reflect.DeepEqual(got.Projects, want.Projects) {
		t.Errorf("Projects = %+v, want %+v", got.Projects, want.Projects)
	}

	entries := got.DailyLog["2026-02-10"]
	if len(entries) != 2 {
		t.Fatalf("len(DailyLog[2026-02-10]) = %d, want 2", len(entries))
	}
	for i, e := range entries {
		w := want.DailyLog["2026-02-10"][i]
		if e.ID != w.ID || e.Type != w.Type || !e.Timestamp.Equal(w.Timestamp) {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
		if !bytes.Equal(e.Payload, w.Payload) {
			t.Errorf("entry %d payload = %s, want %s", i, e.Payload, w.Payload)
		}
	}
}
