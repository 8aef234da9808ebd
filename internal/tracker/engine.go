// Package tracker applies logged study events to a progress document.
//
// Everything here is pure in-memory logic. Callers load the document from
// the store, apply events, and save it back.
package tracker

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/hyperengineering/studytrack/internal/types"
	"github.com/oklog/ulid/v2"
)

// monthLength is the fixed month approximation used to index the plan.
const monthLength = 30 * 24 * time.Hour

// dayLayout is the key format of the daily log.
const dayLayout = "2006-01-02"

// CurrentMonth returns the 1-based plan month for now:
// floor(elapsed / 30 days) + 1, clamped to [1, 12].
func CurrentMonth(doc *types.Progress, now time.Time) int {
	elapsed := now.Sub(doc.StartDate)
	month := int(math.Floor(float64(elapsed)/float64(monthLength))) + 1

	if month < 1 {
		return 1
	}
	if month > types.PlanMonths {
		return types.PlanMonths
	}
	return month
}

// Day returns the daily-log key for t.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// RecordEvent applies ev to doc and appends it to the daily log for now.
// It reports whether the event kind was recognized; unrecognized kinds leave
// doc untouched. An event naming an unsupported language returns
// ErrUnsupportedLanguage, also without touching doc.
func RecordEvent(doc *types.Progress, ev Event, now time.Time) (bool, error) {
	var logged Event

	switch e := ev.(type) {
	case ProblemsSolved:
		stats := doc.Stats.Lang(e.Lang)
		if stats == nil {
			return false, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, e.Lang)
		}
		stats.ProblemsSolved += e.Count
		logged = e

	case ProjectWork:
		stats := doc.Stats.Lang(e.Lang)
		if stats == nil {
			return false, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, e.Lang)
		}
		applyProject(doc, stats, e)
		h := e.hours()
		e.Hours = &h
		logged = e

	case DesignSession:
		doc.Stats.DesignSessions++
		logged = e

	case MockInterview:
		doc.Stats.MockInterviews++
		logged = e

	default:
		return false, nil
	}

	appendLog(doc, logged, now)
	return true, nil
}

// applyProject adds hours to the language and the project, creating the
// project on first sight. projectsCompleted moves only on the first
// transition to completed.
func applyProject(doc *types.Progress, stats *types.LangStats, e ProjectWork) {
	hours := e.hours()
	stats.HoursInvested += hours

	project := doc.FindProject(e.Name)
	if project == nil {
		doc.Projects = append(doc.Projects, types.Project{
			Name: e.Name,
			Lang: e.Lang,
		})
		project = &doc.Projects[len(doc.Projects)-1]
	}
	project.HoursInvested += hours

	if e.Completed {
		wasCompleted := project.Completed
		project.Completed = true
		if !wasCompleted {
			stats.ProjectsCompleted++
		}
	}
}

func appendLog(doc *types.Progress, ev Event, now time.Time) {
	// Event payloads are plain structs of strings, numbers and bools.
	payload, _ := json.Marshal(ev)

	if doc.DailyLog == nil {
		doc.DailyLog = map[string][]types.LogEntry{}
	}

	day := Day(now)
	doc.DailyLog[day] = append(doc.DailyLog[day], types.LogEntry{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Type:      ev.Type(),
		Payload:   payload,
		Timestamp: now.UTC(),
	})
}
