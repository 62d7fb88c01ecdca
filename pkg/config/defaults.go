package config

import (
	"strings"

	"github.com/marmos91/memvfs/pkg/vfs"
)

const (
	// DefaultMetricsPort is the port of the metrics server.
	DefaultMetricsPort = 9090

	// DefaultBufferedMaxSize is the size cap of buffered content (64MiB).
	DefaultBufferedMaxSize = "64MiB"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values ("", 0, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Booleans are left alone; GetDefaultConfig sets their default values
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
	applyNamingDefaults(&cfg.Naming)
	applyContentDefaults(&cfg.Content)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = DefaultMetricsPort
	}
}

func applyNamingDefaults(cfg *NamingConfig) {
	defaults := vfs.DefaultNaming()
	if cfg.Separator == "" {
		cfg.Separator = defaults.Separator
	}
	if cfg.Blacklist == nil {
		cfg.Blacklist = defaults.Blacklist
	}
}

// applyContentDefaults sets content strategy defaults.
func applyContentDefaults(cfg *ContentConfig) {
	if cfg.Type == "" {
		cfg.Type = "buffered"
	}
	cfg.Type = strings.ToLower(cfg.Type)

	// Initialize maps if nil
	if cfg.Buffered == nil {
		cfg.Buffered = make(map[string]any)
	}
	if cfg.Random == nil {
		cfg.Random = make(map[string]any)
	}

	// Apply defaults for all strategies (for config file generation)
	if _, ok := cfg.Buffered["max_size"]; !ok {
		cfg.Buffered["max_size"] = DefaultBufferedMaxSize
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	naming := vfs.DefaultNaming()
	cfg := &Config{
		Naming: NamingConfig{
			CaseSensitive: naming.CaseSensitive,
			ShowDotFiles:  naming.ShowDotFiles,
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
