package handle

import (
	"fmt"
	"sync"
	"time"

	"github.com/marmos91/memvfs/internal/logger"
	"github.com/marmos91/memvfs/pkg/content"
)

// Multiplexer is one open instance of a file. It owns a private cursor and
// shares the inner handle (and its content) with every other Multiplexer of
// the same file.
//
// Overridden operations follow push-act-pull: push the cursor into the
// inner handle, act, pull the resulting position back. All other FileHandle
// methods are forwarded by the embedded Proxy.
//
// Thread Safety:
// Each push-act-pull sequence runs under the configured locker. Handles of
// the same file must share one locker (see WithLocker); a Multiplexer built
// without one only serializes its own operations.
type Multiplexer struct {
	*Proxy[FileHandle]

	mu      sync.Locker
	cursor  int64
	closed  bool
	release func() error
	metrics Metrics
}

// Option configures a Multiplexer.
type Option func(*Multiplexer)

// WithLocker sets the locker shared by all handles of one file.
func WithLocker(l sync.Locker) Option {
	return func(m *Multiplexer) {
		if l != nil {
			m.mu = l
		}
	}
}

// WithRelease sets a callback invoked once when the handle is closed. File
// nodes use it to release the shared content when the last handle goes.
// The callback runs under the handle's locker.
func WithRelease(fn func() error) Option {
	return func(m *Multiplexer) {
		m.release = fn
	}
}

// WithMetrics sets the metrics sink. Nil keeps the no-op implementation.
func WithMetrics(metrics Metrics) Option {
	return func(m *Multiplexer) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

// New creates a Multiplexer over inner with its cursor at 0.
func New(inner FileHandle, opts ...Option) *Multiplexer {
	m := &Multiplexer{
		Proxy:   NewProxy[FileHandle](inner),
		mu:      &sync.Mutex{},
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.metrics.RecordOpen()
	return m
}

// push moves the inner position to this handle's cursor. If the cursor no
// longer fits the content (another handle shrank it), the inner seek fails
// and resets the position to 0, which the following pull adopts.
func (m *Multiplexer) push() {
	if err := m.Inner().Seek(m.cursor, content.SeekStart); err != nil {
		logger.Debug("handle %s: cursor %d no longer valid: %v", m.ID(), m.cursor, err)
	}
}

// pull stores the inner position as this handle's cursor.
func (m *Multiplexer) pull() {
	m.cursor = m.Inner().Tell()
}

// Read reads up to count bytes at this handle's cursor.
func (m *Multiplexer) Read(count int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrHandleClosed
	}

	start := time.Now()
	m.push()
	data, err := m.Inner().Read(count)
	m.pull()

	m.metrics.ObserveRead(len(data), time.Since(start))
	return data, err
}

// Write writes data at this handle's cursor.
func (m *Multiplexer) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrHandleClosed
	}

	start := time.Now()
	m.push()
	n, err := m.Inner().Write(data)
	m.pull()

	m.metrics.ObserveWrite(n, time.Since(start))
	return n, err
}

// Truncate resizes the shared content with the position synchronized first,
// since some strategies truncate through the current position.
func (m *Multiplexer) Truncate(size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrHandleClosed
	}

	m.push()
	err := m.Inner().Truncate(size)
	m.pull()
	return err
}

// Seek moves this handle's cursor. SeekCurrent is computed relative to the
// cursor, so only that origin needs the push; SeekStart and SeekEnd are
// absolute. An unknown origin fails and resets the cursor to 0, like any
// other rejected seek.
func (m *Multiplexer) Seek(offset int64, origin content.Origin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrHandleClosed
	}

	if !origin.Valid() {
		m.cursor = 0
		m.metrics.RecordSeekFailure()
		return fmt.Errorf("origin %d: %w", int(origin), content.ErrInvalidSeek)
	}

	if origin == content.SeekCurrent {
		m.push()
	}
	err := m.Inner().Seek(offset, origin)
	m.pull()

	if err != nil {
		m.metrics.RecordSeekFailure()
	}
	return err
}

// Tell returns the cursor after re-validating it against the current size
// of the shared content.
func (m *Multiplexer) Tell() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return m.cursor
	}

	m.push()
	m.pull()
	return m.cursor
}

// EOF reports whether this handle's cursor is at the end of the content.
func (m *Multiplexer) EOF() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return true
	}

	m.push()
	eof := m.Inner().EOF()
	m.pull()
	return eof
}

// Open reports whether the handle is usable. The shared content was opened
// when the handle was created, so there is nothing to forward.
func (m *Multiplexer) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrHandleClosed
	}
	return nil
}

// Flush flushes the shared content.
func (m *Multiplexer) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrHandleClosed
	}
	return m.Inner().Flush()
}

// Size returns the size of the shared content, or 0 once closed.
func (m *Multiplexer) Size() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0
	}
	return m.Inner().Size()
}

// Unlink is a file node operation; a handle cannot release the content it
// shares with other handles.
func (m *Multiplexer) Unlink() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrHandleClosed
	}
	return fmt.Errorf("unlink through handle %s: %w", m.ID(), content.ErrNotSupported)
}

// Close releases this handle. The shared content and the cursors of other
// handles are untouched. Closing twice is a no-op.
func (m *Multiplexer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.metrics.RecordClose()

	if m.release != nil {
		return m.release()
	}
	return nil
}

// Closed reports whether Close was called.
func (m *Multiplexer) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
