package config

import (
	"github.com/marmos91/memvfs/pkg/handle"
	"github.com/marmos91/memvfs/pkg/metrics"
)

// MetricsResult contains all metrics-related components created from configuration.
type MetricsResult struct {
	// Server is the HTTP server exposing Prometheus metrics (nil if disabled)
	Server *metrics.Server

	// HandleMetrics is passed to file nodes (nil if disabled, which handles
	// treat as no-op)
	HandleMetrics handle.Metrics
}

// InitializeMetrics creates the metrics components described by cfg.
//
// If metrics are enabled the global Prometheus registry is initialized and
// a server on cfg.Metrics.Port is created (not started). Otherwise both
// fields are nil.
func InitializeMetrics(cfg *Config) *MetricsResult {
	if !cfg.Metrics.Enabled {
		return &MetricsResult{}
	}

	metrics.InitRegistry()

	return &MetricsResult{
		Server: metrics.NewServer(metrics.ServerConfig{
			Port: cfg.Metrics.Port,
		}),
		HandleMetrics: metrics.NewHandleMetrics(),
	}
}
