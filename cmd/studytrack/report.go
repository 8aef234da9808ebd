package main

import (
	"fmt"

	"github.com/hyperengineering/studytrack/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the Markdown progress report",
	Args:  cobra.ArbitraryArgs,
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	doc, err := progressStore().Load()
	if err != nil {
		return err
	}

	path := cfg.ReportPath()
	if err := report.WriteReport(path, doc, clock()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "📄 Report generated: %s\n", path)
	return nil
}
