package metrics

import (
	"sync"
	"time"

	"github.com/marmos91/memvfs/pkg/handle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ioDurationBuckets spans in-memory operations (µs) up to slow sinks (ms).
var ioDurationBuckets = []float64{
	0.000001, // 1µs
	0.00001,  // 10µs
	0.0001,   // 100µs
	0.001,    // 1ms
	0.01,     // 10ms
	0.1,      // 100ms
}

// handleMetrics is the Prometheus implementation of handle.Metrics.
//
// It collects:
//   - Read/write operation counts, latencies and bytes
//   - Failed seeks (cursor reset to 0)
//   - Currently open handles
type handleMetrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	bytes        *prometheus.CounterVec
	seekFailures prometheus.Counter
	openHandles  prometheus.Gauge
}

var (
	handleMetricsOnce     sync.Once
	handleMetricsInstance handle.Metrics
)

// NewHandleMetrics returns the Prometheus-backed handle.Metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called), which
// makes handles use their built-in no-op implementation. All callers share
// one instance, so the collectors are registered once.
func NewHandleMetrics() handle.Metrics {
	if !IsEnabled() {
		return nil
	}

	handleMetricsOnce.Do(func() {
		handleMetricsInstance = newHandleMetrics(GetRegistry())
	})
	return handleMetricsInstance
}

func newHandleMetrics(reg prometheus.Registerer) *handleMetrics {
	return &handleMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "handle_operations_total",
				Help:      "Total number of handle read and write operations",
			},
			[]string{"op"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "handle_operation_duration_seconds",
				Help:      "Duration of handle read and write operations in seconds",
				Buckets:   ioDurationBuckets,
			},
			[]string{"op"},
		),
		bytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "handle_bytes_total",
				Help:      "Total bytes moved through handles",
			},
			[]string{"op"},
		),
		seekFailures: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "handle_seek_failures_total",
				Help:      "Total number of rejected seeks",
			},
		),
		openHandles: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "handles_open",
				Help:      "Current number of open handles",
			},
		),
	}
}

// ObserveRead implements handle.Metrics.ObserveRead
func (m *handleMetrics) ObserveRead(bytes int, duration time.Duration) {
	m.observe("read", bytes, duration)
}

// ObserveWrite implements handle.Metrics.ObserveWrite
func (m *handleMetrics) ObserveWrite(bytes int, duration time.Duration) {
	m.observe("write", bytes, duration)
}

func (m *handleMetrics) observe(op string, bytes int, duration time.Duration) {
	m.operations.WithLabelValues(op).Inc()
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
	m.bytes.WithLabelValues(op).Add(float64(bytes))
}

// RecordSeekFailure implements handle.Metrics.RecordSeekFailure
func (m *handleMetrics) RecordSeekFailure() {
	m.seekFailures.Inc()
}

// RecordOpen implements handle.Metrics.RecordOpen
func (m *handleMetrics) RecordOpen() {
	m.openHandles.Inc()
}

// RecordClose implements handle.Metrics.RecordClose
func (m *handleMetrics) RecordClose() {
	m.openHandles.Dec()
}
