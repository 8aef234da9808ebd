package main

import (
	"fmt"
	"log/slog"

	"github.com/hyperengineering/studytrack/internal/archive"
	"github.com/spf13/cobra"
)

var exportDBPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy the daily log and projects into a SQLite database",
	Long:  "Export upserts every logged event and project into a SQLite archive. Re-running it is safe; rows are keyed by day and position.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDBPath, "db", "",
		"SQLite database path (overrides archive.path)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	doc, err := progressStore().Load()
	if err != nil {
		return err
	}

	dbPath := exportDBPath
	if dbPath == "" {
		dbPath = cfg.ArchivePath()
	}

	db, err := archive.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("archive close error", "error", err)
		}
	}()

	result, err := db.Export(ctx, doc)
	if err != nil {
		return err
	}

	slog.Info("archive exported",
		"component", "archive",
		"path", dbPath,
		"events", result.Events,
		"projects", result.Projects,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "🗄️  Exported %d events and %d projects to %s\n",
		result.Events, result.Projects, dbPath)
	return nil
}
