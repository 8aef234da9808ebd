// Package report renders the plan and progress documents for humans:
// aligned console tables and a Markdown report file.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/hyperengineering/studytrack/internal/tracker"
	"github.com/hyperengineering/studytrack/internal/types"
)

const (
	markerCompleted  = "✅"
	markerInProgress = "⏳"
)

// langTitles are the display names of the language tags.
var langTitles = map[types.Language]string{
	types.LangScripting: "Scripting",
	types.LangSystems:   "Systems",
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// RenderTasks prints the focus, daily targets and resources of a 1-based month.
func RenderTasks(w io.Writer, plan *types.Plan, month int) error {
	if month < 1 || month > len(plan.Months) {
		return fmt.Errorf("%w: %d (plan has %d months)", ErrMonthOutOfRange, month, len(plan.Months))
	}
	m := plan.Months[month-1]

	fmt.Fprintf(w, "\n📅 Month %d Focus: %s\n", month, m.Focus)

	fmt.Fprintln(w, "📝 Daily Targets:")
	if err := renderPairs(w, m.Daily); err != nil {
		return err
	}

	fmt.Fprintln(w, "📚 Recommended Resources:")
	return renderPairs(w, m.Resources)
}

// renderPairs prints a label/text mapping as a two-column table sorted by label.
func renderPairs(w io.Writer, pairs map[string]string) error {
	labels := make([]string, 0, len(pairs))
	for label := range pairs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "  LABEL\tDETAIL")
	for _, label := range labels {
		fmt.Fprintf(tw, "  %s\t%s\n", label, pairs[label])
	}
	return tw.Flush()
}

// RenderStats prints the elapsed month, per-language counters, projects and
// session counters.
func RenderStats(w io.Writer, doc *types.Progress, now time.Time) error {
	fmt.Fprintln(w, "\n📊 Current Statistics")
	fmt.Fprintf(w, "⌛ Elapsed Months: %d\n", tracker.CurrentMonth(doc, now))

	fmt.Fprintln(w, "\n💻 Language Stats:")
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "  LANGUAGE\tPROBLEMS\tPROJECTS\tHOURS")
	for _, lang := range types.Languages {
		s := doc.Stats.Lang(lang)
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%s\n",
			langTitles[lang], s.ProblemsSolved, s.ProjectsCompleted, formatHours(s.HoursInvested))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n🔨 Projects:")
	if len(doc.Projects) == 0 {
		fmt.Fprintln(w, "  No projects logged.")
	} else {
		tw = newTabWriter(w)
		fmt.Fprintln(tw, "  NAME\tLANGUAGE\tHOURS\tCOMPLETED")
		for _, p := range doc.Projects {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				p.Name, p.Lang, formatHours(p.HoursInvested), completionMarker(p.Completed))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\n🎯 Other Stats:")
	tw = newTabWriter(w)
	fmt.Fprintf(tw, "  System Designs\t%d\n", doc.Stats.DesignSessions)
	fmt.Fprintf(tw, "  Mock Interviews\t%d\n", doc.Stats.MockInterviews)
	return tw.Flush()
}

// Summarize builds the machine-readable view of doc.
func Summarize(doc *types.Progress, now time.Time) types.ProgressSummary {
	summary := types.ProgressSummary{
		StartDate:      doc.StartDate,
		CurrentMonth:   tracker.CurrentMonth(doc, now),
		Languages:      make(map[types.Language]types.LangStats, len(types.Languages)),
		Projects:       doc.Projects,
		DesignSessions: doc.Stats.DesignSessions,
		MockInterviews: doc.Stats.MockInterviews,
		LoggedDays:     len(doc.DailyLog),
	}
	for _, lang := range types.Languages {
		summary.Languages[lang] = *doc.Stats.Lang(lang)
	}
	for _, entries := range doc.DailyLog {
		summary.LoggedEvents += len(entries)
	}
	if summary.Projects == nil {
		summary.Projects = []types.Project{}
	}
	return summary
}

func completionMarker(completed bool) string {
	if completed {
		return markerCompleted
	}
	return markerInProgress
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
