package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"tasklog/internal/errors"
	"tasklog/internal/logging"
)

const (
	// EnvPrefix prefixes every environment override, e.g. TASKLOG_DAY_START.
	EnvPrefix = "TASKLOG"
	// EnvConfigFile points at an alternative settings file.
	EnvConfigFile = "TASKLOG_CONFIG"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	path string
}

// NewLoader creates a loader for the settings file at path. An empty path
// means DefaultConfigPath.
func NewLoader(path string) *Loader {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Loader{path: path}
}

// Path returns the settings file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the settings file, which is created when missing
// 3. Override with TASKLOG_* environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetConfigFile(l.path)
	v.SetConfigType("toml")

	if err := l.ensureConfigFile(v); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("cannot create config file %s", l.path), err)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("cannot read config file %s", l.path), err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("cannot decode config file %s", l.path), err)
	}
	logging.Debugf("config loaded from %s\n", l.path)

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return config, nil
}

// ensureConfigFile writes the defaults to the settings file if it does not
// exist yet.
func (l *Loader) ensureConfigFile(v *viper.Viper) error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	logging.Debugf("config file %s not found; creating one with default values\n", l.path)
	return v.WriteConfigAs(l.path)
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("day_start", defaults.DayStart)
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.sqlite_filename", defaults.Storage.SQLiteFilename)
	v.SetDefault("storage.postgres_url", defaults.Storage.PostgresURL)
	v.SetDefault("validation.task_name_max_length", defaults.Validation.TaskNameMaxLength)
	v.SetDefault("display.color", defaults.Display.Color)
	v.SetDefault("application.timeout", defaults.Application.Timeout.String())
	v.SetDefault("application.verbose", defaults.Application.Verbose)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DataDir  *string
	DayStart *string
	Backend  *string
	NoColor  *bool
	Verbose  *bool
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.DataDir != nil {
		config.DataDir = *o.DataDir
	}
	if o.DayStart != nil {
		config.DayStart = *o.DayStart
	}
	if o.Backend != nil {
		config.Storage.Backend = *o.Backend
	}
	if o.NoColor != nil && *o.NoColor {
		config.Display.Color = false
	}
	if o.Verbose != nil && *o.Verbose {
		config.Application.Verbose = true
	}
}
