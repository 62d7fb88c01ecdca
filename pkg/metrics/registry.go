// Package metrics exports memvfs handle activity to Prometheus.
//
// Nothing is collected until InitRegistry is called. Before that,
// NewHandleMetrics returns nil and files fall back to the no-op
// handle.Metrics, so a process that never enables metrics pays nothing:
//
//	metrics.InitRegistry()
//	f, _ := vfs.NewFile("log", nil, vfs.WithMetrics(metrics.NewHandleMetrics()))
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every memvfs metric name.
const Namespace = "memvfs"

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry creates the process-wide registry, with the Go runtime and
// process collectors already attached. Later calls are ignored.
func InitRegistry() {
	registryOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}),
		)
		registry = reg
	})
}

// GetRegistry returns the registry, or nil while metrics are disabled.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled reports whether InitRegistry has run.
func IsEnabled() bool {
	return GetRegistry() != nil
}
