package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"tasklog/internal/calendar"
	"tasklog/internal/validation"
)

// AppName names the default config and data directories.
const AppName = "tasklog"

// Storage backends.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration options for tasklog
type Config struct {
	DataDir     string            `mapstructure:"data_dir" yaml:"data_dir"`
	DayStart    string            `mapstructure:"day_start" yaml:"day_start"`
	Storage     StorageConfig     `mapstructure:"storage" yaml:"storage"`
	Validation  ValidationConfig  `mapstructure:"validation" yaml:"validation"`
	Display     DisplayConfig     `mapstructure:"display" yaml:"display"`
	Application ApplicationConfig `mapstructure:"application" yaml:"application"`
}

// StorageConfig selects and configures the day store
type StorageConfig struct {
	Backend        string `mapstructure:"backend" yaml:"backend"`
	SQLiteFilename string `mapstructure:"sqlite_filename" yaml:"sqlite_filename"`
	PostgresURL    string `mapstructure:"postgres_url" yaml:"postgres_url"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMaxLength int `mapstructure:"task_name_max_length" yaml:"task_name_max_length"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Color bool `mapstructure:"color" yaml:"color"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Verbose bool          `mapstructure:"verbose" yaml:"verbose"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir(),
		DayStart: calendar.DefaultDayStart.String(),
		Storage: StorageConfig{
			Backend:        BackendJSON,
			SQLiteFilename: "tasklog.db",
		},
		Validation: ValidationConfig{
			TaskNameMaxLength: validation.DefaultTaskNameMaxLength,
		},
		Display: DisplayConfig{
			Color: true,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// DefaultDataDir returns the per-user data directory for day files.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	if runtime.GOOS == "linux" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", AppName)
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	return AppName
}

// DefaultConfigPath returns TASKLOG_CONFIG or the per-user settings file.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.toml"
	}
	return filepath.Join(dir, AppName, "settings.toml")
}

// GetSQLitePath returns the full path to the sqlite database file
func (c *Config) GetSQLitePath() string {
	return filepath.Join(c.DataDir, c.Storage.SQLiteFilename)
}

// GetDayStart returns the parsed day start. Validate guarantees it parses.
func (c *Config) GetDayStart() calendar.DayStart {
	ds, err := calendar.ParseDayStart(c.DayStart)
	if err != nil {
		return calendar.DefaultDayStart
	}
	return ds
}

// GetValidationLimits returns the limits for task name validation
func (c *Config) GetValidationLimits() validation.Limits {
	return validation.Limits{TaskNameMaxLength: c.Validation.TaskNameMaxLength}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return &ConfigError{Field: "data_dir", Message: "data directory cannot be empty"}
	}
	if _, err := calendar.ParseDayStart(c.DayStart); err != nil {
		return &ConfigError{Field: "day_start", Message: "day start must be HH:MM"}
	}

	switch c.Storage.Backend {
	case BackendJSON:
	case BackendSQLite:
		if c.Storage.SQLiteFilename == "" {
			return &ConfigError{Field: "storage.sqlite_filename", Message: "sqlite filename cannot be empty"}
		}
	case BackendPostgres:
		if c.Storage.PostgresURL == "" {
			return &ConfigError{Field: "storage.postgres_url", Message: "postgres url is required for the postgres backend"}
		}
	default:
		return &ConfigError{Field: "storage.backend", Message: "unknown backend " + c.Storage.Backend + " (want json, sqlite or postgres)"}
	}

	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
