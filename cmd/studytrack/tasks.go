package main

import (
	"github.com/hyperengineering/studytrack/internal/report"
	"github.com/hyperengineering/studytrack/internal/tracker"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show the current month's focus, daily targets and resources",
	Args:  cobra.ArbitraryArgs,
	RunE:  runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	plan, err := planStore().Load()
	if err != nil {
		return err
	}

	doc, err := progressStore().Load()
	if err != nil {
		return err
	}

	month := tracker.CurrentMonth(doc, clock())
	return report.RenderTasks(cmd.OutOrStdout(), plan, month)
}
