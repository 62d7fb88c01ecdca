package handle

import "time"

// Metrics provides observability for handle operations.
//
// Implementations can use this interface to collect metrics about handle
// I/O and lifetime. This is optional - if not provided, metrics collection
// is skipped.
type Metrics interface {
	// ObserveRead records a read returning bytes
	ObserveRead(bytes int, duration time.Duration)

	// ObserveWrite records a write accepting bytes
	ObserveWrite(bytes int, duration time.Duration)

	// RecordSeekFailure records a seek that reset the cursor
	RecordSeekFailure()

	// RecordOpen records a handle being opened
	RecordOpen()

	// RecordClose records a handle being closed
	RecordClose()
}

// noopMetrics is a default no-op metrics implementation
type noopMetrics struct{}

func (noopMetrics) ObserveRead(bytes int, duration time.Duration)  {}
func (noopMetrics) ObserveWrite(bytes int, duration time.Duration) {}
func (noopMetrics) RecordSeekFailure()                             {}
func (noopMetrics) RecordOpen()                                    {}
func (noopMetrics) RecordClose()                                   {}
