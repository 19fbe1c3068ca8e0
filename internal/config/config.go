package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete papyru2 configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Create   CreateConfig   `mapstructure:"create"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PathsConfig controls where papyru2 stores notes and state
type PathsConfig struct {
	// DocumentRoot is the directory that holds the dated note tree.
	// If empty, it defaults to <home>/data/user_document as resolved by
	// the application path logic.
	DocumentRoot string `mapstructure:"document_root"`
	// LogDir is the directory for the engine log file.
	// If empty, it defaults to <home>/log.
	LogDir string `mapstructure:"log_dir"`
	// PrefsFile is the path of the preferences file that remembers
	// the last opened note. If empty, it defaults to <home>/conf/prefs.toml.
	PrefsFile string `mapstructure:"prefs_file"`
}

// CreateConfig controls note creation behavior
type CreateConfig struct {
	// MinIntervalMs is the minimum gap between two create attempts in
	// milliseconds. A second attempt inside this window is dropped (default: 1000)
	MinIntervalMs int `mapstructure:"min_interval_ms"`
}

// AutosaveConfig controls the background autosave worker
type AutosaveConfig struct {
	// IdleSeconds is how long the editor must sit unchanged before a
	// pending snapshot is flushed (default: 6)
	IdleSeconds int `mapstructure:"idle_seconds"`
	// TickMs is how often the worker polls for due snapshots in
	// milliseconds (default: 200)
	TickMs int `mapstructure:"tick_ms"`
}

// CatalogConfig controls the document catalog and its filesystem watcher
type CatalogConfig struct {
	// WatchEnabled controls whether the catalog watches the document tree
	// for external changes (default: true)
	WatchEnabled bool `mapstructure:"watch_enabled"`
}

// LoggingConfig controls engine logging behavior
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// MinInterval returns the create throttle window as a time.Duration
func (c *CreateConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMs) * time.Millisecond
}

// IdleDuration returns the autosave idle threshold as a time.Duration
func (c *AutosaveConfig) IdleDuration() time.Duration {
	return time.Duration(c.IdleSeconds) * time.Second
}

// TickInterval returns the autosave poll interval as a time.Duration
func (c *AutosaveConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// ResolveDocumentRoot returns the document root, falling back to the
// default layout under homeDir when unset.
func (p *PathsConfig) ResolveDocumentRoot(homeDir string) string {
	if p.DocumentRoot != "" {
		return p.DocumentRoot
	}
	return filepath.Join(homeDir, "data", "user_document")
}

// ResolveLogDir returns the log directory, falling back to the default
// layout under homeDir when unset.
func (p *PathsConfig) ResolveLogDir(homeDir string) string {
	if p.LogDir != "" {
		return p.LogDir
	}
	return filepath.Join(homeDir, "log")
}

// ResolvePrefsFile returns the preferences file path, falling back to the
// default layout under homeDir when unset.
func (p *PathsConfig) ResolvePrefsFile(homeDir string) string {
	if p.PrefsFile != "" {
		return p.PrefsFile
	}
	return filepath.Join(homeDir, "conf", "prefs.toml")
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DocumentRoot: "", // Empty means use <home>/data/user_document
			LogDir:       "", // Empty means use <home>/log
			PrefsFile:    "", // Empty means use <home>/conf/prefs.toml
		},
		Create: CreateConfig{
			MinIntervalMs: 1000,
		},
		Autosave: AutosaveConfig{
			IdleSeconds: 6,
			TickMs:      200,
		},
		Catalog: CatalogConfig{
			WatchEnabled: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Paths defaults
	viper.SetDefault("paths.document_root", defaults.Paths.DocumentRoot)
	viper.SetDefault("paths.log_dir", defaults.Paths.LogDir)
	viper.SetDefault("paths.prefs_file", defaults.Paths.PrefsFile)

	// Create defaults
	viper.SetDefault("create.min_interval_ms", defaults.Create.MinIntervalMs)

	// Autosave defaults
	viper.SetDefault("autosave.idle_seconds", defaults.Autosave.IdleSeconds)
	viper.SetDefault("autosave.tick_ms", defaults.Autosave.TickMs)

	// Catalog defaults
	viper.SetDefault("catalog.watch_enabled", defaults.Catalog.WatchEnabled)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// FileName is the name of the config file inside the conf directory.
const FileName = "config.yaml"
