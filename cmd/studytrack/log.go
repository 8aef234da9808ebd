package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hyperengineering/studytrack/internal/tracker"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a study event",
	Long:  "Record solved problems, project hours, design sessions or mock interviews. Arguments are coerced best-effort: the leading integer of each number is used, a count without one is 0 and hours without one count as 1.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runUsage,
}

var logLCCmd = &cobra.Command{
	Use:   "lc <lang> <count> <difficulty>",
	Short: "Record solved practice problems",
	Args:  cobra.ArbitraryArgs,
	RunE:  runLogLC,
}

var logProjectCmd = &cobra.Command{
	Use:   "project <lang> <name> [hours] [completed]",
	Short: "Record hours on a project, optionally marking it completed",
	Args:  cobra.ArbitraryArgs,
	RunE:  runLogProject,
}

var logDesignCmd = &cobra.Command{
	Use:   "design",
	Short: "Record a system design session",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordEvent(cmd, tracker.DesignSession{})
	},
}

var logMockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Record a mock interview",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordEvent(cmd, tracker.MockInterview{})
	},
}

func init() {
	// Counts and hours may be negative; "-2" must stay positional.
	logLCCmd.Flags().SetInterspersed(false)
	logProjectCmd.Flags().SetInterspersed(false)

	logCmd.AddCommand(logLCCmd)
	logCmd.AddCommand(logProjectCmd)
	logCmd.AddCommand(logDesignCmd)
	logCmd.AddCommand(logMockCmd)
}

func runLogLC(cmd *cobra.Command, args []string) error {
	lang, _ := tracker.ParseLanguage(argAt(args, 0))
	count, _ := leadingInt(argAt(args, 1))

	return recordEvent(cmd, tracker.ProblemsSolved{
		Lang:       lang,
		Count:      count,
		Difficulty: argAt(args, 2),
	})
}

func runLogProject(cmd *cobra.Command, args []string) error {
	lang, _ := tracker.ParseLanguage(argAt(args, 0))

	ev := tracker.ProjectWork{
		Lang:      lang,
		Name:      argAt(args, 1),
		Completed: argAt(args, 3) == "true",
	}
	if h, ok := leadingInt(argAt(args, 2)); ok {
		hours := float64(h)
		ev.Hours = &hours
	}

	return recordEvent(cmd, ev)
}

// recordEvent loads the progress document, applies ev and saves the result.
func recordEvent(cmd *cobra.Command, ev tracker.Event) error {
	ps := progressStore()

	doc, err := ps.Load()
	if err != nil {
		return err
	}

	recorded, err := tracker.RecordEvent(doc, ev, clock())
	if errors.Is(err, tracker.ErrUnsupportedLanguage) {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v (use scripting or systems)\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	if !recorded {
		return nil
	}

	if err := ps.Save(doc); err != nil {
		return err
	}

	slog.Debug("event recorded",
		"type", ev.Type(),
		"path", ps.Path(),
	)
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Progress logged successfully!")
	return nil
}

// leadingInt parses the optionally signed integer prefix of s, ignoring
// leading whitespace and anything after the digits: "5x" is 5, "2.5" is 2.
// The bool is false when s has no digits at the start.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// argAt returns args[i], or "" when the argument was not given.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
