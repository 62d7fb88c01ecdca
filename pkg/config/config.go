package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the complete memvfs configuration.
//
// This structure captures all configurable aspects of the library and CLI:
//   - Logging configuration
//   - Prometheus metrics exposure
//   - File naming rules applied to new file nodes
//   - Content strategy selection and configuration (strategy-specific)
//
// Configuration sources (in order of precedence):
//  1. Environment variables (MEMVFS_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// Strategy Configuration Pattern:
// Each content strategy reads its options from its own section
// (content.buffered, content.random). Only the section matching the
// selected type is used.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics controls the Prometheus endpoint
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Naming holds the file name rules
	Naming NamingConfig `mapstructure:"naming" yaml:"naming"`

	// Content specifies the content strategy for new files
	Content ContentConfig `mapstructure:"content" yaml:"content"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// MetricsConfig controls the metrics HTTP server.
type MetricsConfig struct {
	// Enabled turns on handle metrics and the /metrics endpoint
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port of the metrics server
	Port int `mapstructure:"port" yaml:"port" validate:"omitempty,min=1,max=65535"`
}

// NamingConfig mirrors vfs.Naming.
type NamingConfig struct {
	// Separator is the path separator; it may not appear in a file name
	Separator string `mapstructure:"separator" yaml:"separator" validate:"required,separator"`

	// CaseSensitive controls whether names differing only in case are distinct
	CaseSensitive bool `mapstructure:"case_sensitive" yaml:"case_sensitive"`

	// ShowDotFiles controls whether names starting with "." are listed
	ShowDotFiles bool `mapstructure:"show_dot_files" yaml:"show_dot_files"`

	// Blacklist lists sequences forbidden in file names
	Blacklist []string `mapstructure:"blacklist" yaml:"blacklist" validate:"dive,required"`
}

// ContentConfig specifies the content strategy used for new files.
//
// The Type field determines which strategy is used. Only the corresponding
// type-specific section is read.
type ContentConfig struct {
	// Type specifies which content strategy to use
	// Valid values: buffered, null, zero, random, full
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=buffered null zero random full"`

	// Buffered contains buffered-stream options
	// Only used when Type = "buffered"
	Buffered map[string]any `mapstructure:"buffered" yaml:"buffered"`

	// Random contains random-device options
	// Only used when Type = "random"
	Random map[string]any `mapstructure:"random" yaml:"random"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (MEMVFS_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Configure viper
	setupViper(v, configPath)

	// Read configuration file if it exists
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults for any missing values
	ApplyDefaults(&cfg)

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use MEMVFS_ prefix and underscores
	// Example: MEMVFS_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("MEMVFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults registered here also make the keys visible to AutomaticEnv
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Use default location: $XDG_CONFIG_HOME/memvfs/config.yaml
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// setViperDefaults registers the scalar defaults of GetDefaultConfig.
// Booleans need this: a missing key would otherwise decode as false.
func setViperDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.output", defaults.Logging.Output)
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.port", defaults.Metrics.Port)
	v.SetDefault("naming.separator", defaults.Naming.Separator)
	v.SetDefault("naming.case_sensitive", defaults.Naming.CaseSensitive)
	v.SetDefault("naming.show_dot_files", defaults.Naming.ShowDotFiles)
	v.SetDefault("content.type", defaults.Content.Type)
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		// An explicit config path that does not exist is treated the same
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// byteSizeDecodeHook converts human-readable sizes ("64MiB", "1 GB") and
// plain numbers to int64 byte counts.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to.Kind() != reflect.Int64 {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			n, err := humanize.ParseBytes(v)
			if err != nil {
				return nil, fmt.Errorf("invalid size %q: %w", v, err)
			}
			return int64(n), nil
		case float64:
			// YAML often deserializes numbers as float64
			return int64(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "memvfs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "memvfs")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists checks if a config file exists at the default location.
func ConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
