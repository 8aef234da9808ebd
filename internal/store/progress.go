package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hyperengineering/studytrack/internal/types"
)

// ProgressStore reads and writes the progress document.
// Every Save rewrites the whole file; there is no locking.
type ProgressStore struct {
	path string
	now  func() time.Time
}

// ProgressOption configures a ProgressStore.
type ProgressOption func(*ProgressStore)

// WithClock sets the time source used to stamp a freshly created document.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *ProgressStore) {
		s.now = now
	}
}

// NewProgressStore returns a store backed by the file at path.
func NewProgressStore(path string, opts ...ProgressOption) *ProgressStore {
	s := &ProgressStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file location.
func (s *ProgressStore) Path() string {
	return s.path
}

// Load returns the persisted progress document. An unreadable or unparseable
// file, or one without a start date, is replaced by a fresh default document
// starting now.
func (s *ProgressStore) Load() (*types.Progress, error) {
	var doc types.Progress
	err := readJSON(s.path, &doc)
	if err == nil && doc.StartDate.IsZero() {
		err = ErrInvalidProgress
	}
	if err == nil {
		normalize(&doc)
		return &doc, nil
	}

	slog.Info("progress document unusable, writing default",
		"component", "store",
		"path", s.path,
		"error", err,
	)

	def := DefaultProgress(s.now())
	if err := s.Save(def); err != nil {
		return nil, err
	}
	return def, nil
}

// Save overwrites the backing file with doc.
func (s *ProgressStore) Save(doc *types.Progress) error {
	return writeJSON(s.path, doc)
}

// DefaultProgress returns an empty document whose tracking starts at now.
func DefaultProgress(now time.Time) *types.Progress {
	return &types.Progress{
		StartDate: now.UTC(),
		Projects:  []types.Project{},
		DailyLog:  map[string][]types.LogEntry{},
	}
}

// normalize replaces null collections so callers can append without checks,
// and compacts event payloads, which Save writes re-indented.
func normalize(doc *types.Progress) {
	if doc.Projects == nil {
		doc.Projects = []types.Project{}
	}
	if doc.DailyLog == nil {
		doc.DailyLog = map[string][]types.LogEntry{}
	}
	for _, entries := range doc.DailyLog {
		for i := range entries {
			entries[i].Payload = compactPayload(entries[i].Payload)
		}
	}
}

func compactPayload(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
