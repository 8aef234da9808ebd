package main

import (
	"github.com/hyperengineering/studytrack/internal/report"
	"github.com/spf13/cobra"
)

var statsJSONOutput bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	Args:  cobra.ArbitraryArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSONOutput, "json", false,
		"Output in JSON format")
}

func runStats(cmd *cobra.Command, args []string) error {
	doc, err := progressStore().Load()
	if err != nil {
		return err
	}

	now := clock()
	if statsJSONOutput {
		return printJSON(cmd.OutOrStdout(), report.Summarize(doc, now))
	}
	return report.RenderStats(cmd.OutOrStdout(), doc, now)
}
