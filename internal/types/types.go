package types

import (
	"encoding/json"
	"time"
)

// Language identifies one of the two tracked skills.
type Language string

const (
	LangScripting Language = "scripting"
	LangSystems   Language = "systems"
)

// Languages lists the supported language tags in display order.
var Languages = []Language{LangScripting, LangSystems}

// EventType is the tag stored with every daily-log entry.
type EventType string

const (
	EventProblemsSolved EventType = "lc"
	EventProject        EventType = "project"
	EventDesign         EventType = "design"
	EventMock           EventType = "mock"
)

// PlanMonths is the fixed length of a study plan.
const PlanMonths = 12

// Plan is the month-by-month curriculum. Read-only once loaded.
type Plan struct {
	Months []MonthPlan `json:"months"`
}

// MonthPlan describes the focus, daily targets and resources of one month.
type MonthPlan struct {
	Focus     string            `json:"focus"`
	Daily     map[string]string `json:"daily"`
	Resources map[string]string `json:"resources"`
}

// Progress is the mutable record of everything logged so far.
// The current month is never stored; it is derived from StartDate.
type Progress struct {
	StartDate time.Time             `json:"startDate"`
	Stats     Stats                 `json:"stats"`
	Projects  []Project             `json:"projects"`
	DailyLog  map[string][]LogEntry `json:"dailyLog"`
}

// Stats holds per-language counters plus the two session counters.
type Stats struct {
	Scripting      LangStats `json:"scripting"`
	Systems        LangStats `json:"systems"`
	DesignSessions int       `json:"designSessions"`
	MockInterviews int       `json:"mockInterviews"`
}

// LangStats aggregates activity for a single language.
type LangStats struct {
	ProblemsSolved    int     `json:"problemsSolved"`
	ProjectsCompleted int     `json:"projectsCompleted"`
	HoursInvested     float64 `json:"hoursInvested"`
}

// Lang returns the counters for the given tag, or nil if the tag is unsupported.
func (s *Stats) Lang(lang Language) *LangStats {
	switch lang {
	case LangScripting:
		return &s.Scripting
	case LangSystems:
		return &s.Systems
	default:
		return nil
	}
}

// Project is a named piece of practice work. Names are unique within a Progress.
type Project struct {
	Name          string   `json:"name"`
	Lang          Language `json:"lang"`
	HoursInvested float64  `json:"hoursInvested"`
	Completed     bool     `json:"completed"`
}

// FindProject returns the project with the given name, or nil.
func (p *Progress) FindProject(name string) *Project {
	for i := range p.Projects {
		if p.Projects[i].Name == name {
			return &p.Projects[i]
		}
	}
	return nil
}

// LogEntry is one appended daily-log record.
type LogEntry struct {
	ID        string          `json:"id,omitempty"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// ProgressSummary is the machine-readable form printed by `stats --json`.
type ProgressSummary struct {
	StartDate      time.Time              `json:"start_date"`
	CurrentMonth   int                    `json:"current_month"`
	Languages      map[Language]LangStats `json:"languages"`
	Projects       []Project              `json:"projects"`
	DesignSessions int                    `json:"design_sessions"`
	MockInterviews int                    `json:"mock_interviews"`
	LoggedDays     int                    `json:"logged_days"`
	LoggedEvents   int                    `json:"logged_events"`
}
