// Package archive copies the progress document into a SQLite database so the
// daily log can be queried with plain SQL.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hyperengineering/studytrack/internal/types"
	_ "modernc.org/sqlite"
)

// ExportResult counts the rows written by one Export call.
type ExportResult struct {
	Events   int `json:"events"`
	Projects int `json:"projects"`
}

// Store is the SQLite-backed archive.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the archive at dbPath, applies pragmas and runs
// migrations.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

// enablePragmas sets SQLite pragmas for durability and lock behavior.
func enablePragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Export upserts every daily-log entry and every project of doc in a single
// transaction. Events are keyed by (day, position within the day), so
// exporting the same append-only log again rewrites identical rows.
func (s *Store) Export(ctx context.Context, doc *types.Progress) (*ExportResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	result := &ExportResult{}

	days := make([]string, 0, len(doc.DailyLog))
	for day := range doc.DailyLog {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		for seq, e := range doc.DailyLog[day] {
			payload := compactPayload(e.Payload)
			_, err := tx.ExecContext(ctx, `
				INSERT INTO events (day, seq, id, type, payload, recorded_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(day, seq) DO UPDATE SET
					id = excluded.id,
					type = excluded.type,
					payload = excluded.payload,
					recorded_at = excluded.recorded_at
			`, day, seq, nullString(e.ID), string(e.Type), payload, e.Timestamp.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return nil, fmt.Errorf("export event %s/%d: %w", day, seq, err)
			}
			result.Events++
		}
	}

	exportedAt := s.now().UTC().Format(time.RFC3339)
	for _, p := range doc.Projects {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (name, lang, hours_invested, completed, exported_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				lang = excluded.lang,
				hours_invested = excluded.hours_invested,
				completed = excluded.completed,
				exported_at = excluded.exported_at
		`, p.Name, string(p.Lang), p.HoursInvested, p.Completed, exportedAt)
		if err != nil {
			return nil, fmt.Errorf("export project %q: %w", p.Name, err)
		}
		result.Projects++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit export: %w", err)
	}
	return result, nil
}

// Events returns the archived entries for day in log order.
func (s *Store) Events(ctx context.Context, day string) ([]types.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, payload, recorded_at
		FROM events
		WHERE day = ?
		ORDER BY seq
	`, day)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var entries []types.LogEntry
	for rows.Next() {
		var (
			id         sql.NullString
			typ        string
			payload    string
			recordedAt string
		)
		if err := rows.Scan(&id, &typ, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		entries = append(entries, types.LogEntry{
			ID:        id.String,
			Type:      types.EventType(typ),
			Payload:   []byte(payload),
			Timestamp: ts,
		})
	}
	return entries, rows.Err()
}

// Projects returns the archived projects ordered by name.
func (s *Store) Projects(ctx context.Context) ([]types.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, lang, hours_invested, completed
		FROM projects
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []types.Project
	for rows.Next() {
		var (
			p    types.Project
			lang string
		)
		if err := rows.Scan(&p.Name, &lang, &p.HoursInvested, &p.Completed); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Lang = types.Language(lang)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// EventCounts returns the number of archived events per type.
func (s *Store) EventCounts(ctx context.Context) (map[types.EventType]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT type, COUNT(*) FROM events GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("query event counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.EventType]int)
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[types.EventType(typ)] = n
	}
	return counts, rows.Err()
}

// compactPayload strips the indentation the JSON document carries.
func compactPayload(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
