package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hyperengineering/studytrack/internal/config"
	"github.com/hyperengineering/studytrack/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	configPathOverride string
	dataDirOverride    string
)

// cfg is populated by loadConfig before any subcommand runs.
var cfg *config.Config

// clock returns the current time. Tests replace it to pin the date.
var clock = time.Now

const usageText = `Usage:
  studytrack tasks
  studytrack log lc [scripting|systems] [count] [easy|medium|hard]
  studytrack log project [scripting|systems] [project-name] [hours] [completed(true/false)]
  studytrack log design
  studytrack log mock
  studytrack stats [--json]
  studytrack report
  studytrack export [--db path]
`

var rootCmd = &cobra.Command{
	Use:               "studytrack",
	Short:             "studytrack - personal study progress tracker",
	Version:           Version,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runUsage,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathOverride, "config", "",
		"Config file path (overrides STUDYTRACK_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&dataDirOverride, "data-dir", "",
		"Directory holding plan.json and progress.json (overrides config)")

	// Unknown flags get the usage text like unknown commands do.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return runUsage(cmd, nil)
	})

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig resolves configuration and installs the process logger.
// It only reads files; documents are created by the commands that need them.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configPathOverride != "" {
		cfg, err = config.LoadFrom(configPathOverride)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataDirOverride != "" {
		cfg.Data.Dir = dataDirOverride
	}

	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Log))
	slog.Debug("configuration loaded",
		"plan", cfg.PlanPath(),
		"progress", cfg.ProgressPath(),
	)
	return nil
}

// runUsage prints the usage text. Unknown commands land here too and
// exit successfully without touching any file.
func runUsage(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.OutOrStdout(), usageText)
	return nil
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(lc.Level)}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func planStore() *store.PlanStore {
	return store.NewPlanStore(cfg.PlanPath())
}

func progressStore() *store.ProgressStore {
	return store.NewProgressStore(cfg.ProgressPath(), store.WithClock(clock))
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
