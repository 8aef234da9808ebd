// Package store persists the plan and progress documents as local JSON files.
//
// Both stores follow the same contract: a missing or unusable file is never an
// error on load. The store synthesizes the default document, writes it to disk
// and returns it.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperengineering/studytrack/internal/types"
)

// PlanLoader provides the read-only study plan.
type PlanLoader interface {
	Load() (*types.Plan, error)
}

// ProgressRepository loads and persists the progress document.
type ProgressRepository interface {
	Load() (*types.Progress, error)
	Save(doc *types.Progress) error
}

// readJSON decodes the file at path into v.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON overwrites path with the indented JSON encoding of v.
// Parent directories are created as needed.
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
