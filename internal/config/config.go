package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Report  ReportConfig  `yaml:"report"`
	Archive ArchiveConfig `yaml:"archive"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig locates the plan and progress documents.
// Relative file names are resolved against Dir.
type DataConfig struct {
	Dir          string `yaml:"dir"`
	PlanFile     string `yaml:"plan_file"`
	ProgressFile string `yaml:"progress_file"`
}

// ReportConfig contains Markdown report settings.
type ReportConfig struct {
	Path string `yaml:"path"`
}

// ArchiveConfig contains SQLite export settings.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PlanPath returns the resolved plan document location.
func (c *Config) PlanPath() string {
	return c.resolve(c.Data.PlanFile)
}

// ProgressPath returns the resolved progress document location.
func (c *Config) ProgressPath() string {
	return c.resolve(c.Data.ProgressFile)
}

// ReportPath returns the resolved report location.
func (c *Config) ReportPath() string {
	return c.resolve(c.Report.Path)
}

// ArchivePath returns the resolved SQLite archive location.
func (c *Config) ArchivePath() string {
	return c.resolve(c.Archive.Path)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(expandHome(c.Data.Dir), name)
}

// Load loads configuration with precedence: defaults → YAML file → .env → env vars.
// The YAML path comes from STUDYTRACK_CONFIG_PATH, defaulting to studytrack.yaml.
func Load() (*Config, error) {
	return LoadFrom(getEnv("STUDYTRACK_CONFIG_PATH", "studytrack.yaml"))
}

// LoadFrom loads configuration using the YAML file at path.
// A missing file is not an error; defaults apply.
func LoadFrom(path string) (*Config, error) {
	cfg := newDefaults()

	if err := loadYAMLFile(cfg, path); err != nil {
		return nil, err
	}

	// Values already present in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          ".",
			PlanFile:     "plan.json",
			ProgressFile: "progress.json",
		},
		Report: ReportConfig{
			Path: "progress_report.md",
		},
		Archive: ArchiveConfig{
			Path: "studytrack.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STUDYTRACK_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("STUDYTRACK_PLAN_FILE"); v != "" {
		cfg.Data.PlanFile = v
	}
	if v := os.Getenv("STUDYTRACK_PROGRESS_FILE"); v != "" {
		cfg.Data.ProgressFile = v
	}
	if v := os.Getenv("STUDYTRACK_REPORT_PATH"); v != "" {
		cfg.Report.Path = v
	}
	if v := os.Getenv("STUDYTRACK_ARCHIVE_PATH"); v != "" {
		cfg.Archive.Path = v
	}
	if v := os.Getenv("STUDYTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STUDYTRACK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks that required configuration values are set.
func (c *Config) validate() error {
	if c.Data.PlanFile == "" {
		return fmt.Errorf("data.plan_file is required")
	}
	if c.Data.ProgressFile == "" {
		return fmt.Errorf("data.progress_file is required")
	}
	if c.Report.Path == "" {
		return fmt.Errorf("report.path is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
