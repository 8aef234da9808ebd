package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperengineering/studytrack/internal/tracker"
	"github.com/hyperengineering/studytrack/internal/types"
)

// RenderReport returns the Markdown progress report for doc.
func RenderReport(doc *types.Progress, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Study Progress Report\n\n")
	fmt.Fprintf(&b, "**Start Date**: %s\n\n", doc.StartDate.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**Current Month**: %d\n\n", tracker.CurrentMonth(doc, now))

	b.WriteString("## Language Progress\n")
	for _, lang := range types.Languages {
		s := doc.Stats.Lang(lang)
		fmt.Fprintf(&b, "\n### %s\n\n", langTitles[lang])
		fmt.Fprintf(&b, "- Problems Solved: %d\n", s.ProblemsSolved)
		fmt.Fprintf(&b, "- Projects Completed: %d\n", s.ProjectsCompleted)
		fmt.Fprintf(&b, "- Hours Invested: %s\n", formatHours(s.HoursInvested))
	}

	b.WriteString("\n## Projects\n\n")
	if len(doc.Projects) == 0 {
		b.WriteString("- None yet\n")
	}
	for _, p := range doc.Projects {
		status := "In Progress"
		if p.Completed {
			status = "Completed"
		}
		fmt.Fprintf(&b, "- **%s** (%s): %sh - %s\n", p.Name, p.Lang, formatHours(p.HoursInvested), status)
	}

	b.WriteString("\n## System Design\n\n")
	fmt.Fprintf(&b, "- Completed Designs: %d\n", doc.Stats.DesignSessions)

	b.WriteString("\n## Mock Interviews\n\n")
	fmt.Fprintf(&b, "- Completed Mocks: %d\n", doc.Stats.MockInterviews)

	return b.String()
}

// WriteReport renders the report and overwrites the file at path.
func WriteReport(path string, doc *types.Progress, now time.Time) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(RenderReport(doc, now)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
