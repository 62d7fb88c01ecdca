// Package buffered implements the buffered stream content strategy: a
// resizable byte store addressed at the shared content position.
//
// A Stream is backed by a Sink. Two construction paths exist:
//   - New copies initial bytes into a fresh in-memory temporary file that
//     the Stream owns and releases on Unlink.
//   - FromSink wraps a caller-owned, already-open random-access sink such
//     as an *os.File. The Stream never closes it; it only syncs it on Flush
//     and holds an advisory lock between Open and Close.
package buffered

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marmos91/memvfs/internal/logger"
	"github.com/marmos91/memvfs/pkg/content"
	"github.com/spf13/afero"
)

// ErrReleased is returned by operations on a Stream whose owned store was
// released by Unlink.
var ErrReleased = errors.New("content store released")

// ErrLocked is returned by Open when another holder has the sink locked.
var ErrLocked = errors.New("content sink is locked")

// Sink is the random-access byte store behind a Stream. *os.File and
// afero.File both satisfy it.
type Sink interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
	Stat() (os.FileInfo, error)
	Sync() error
}

// Stream is the buffered content strategy.
type Stream struct {
	content.Base

	sink  Sink
	owned bool

	// store and name identify the owned temporary file; zero for
	// caller-owned sinks.
	store afero.Fs
	name  string

	locked   bool
	released bool

	// maxSize caps the content length; 0 means unbounded.
	maxSize int64
}

// Option configures a Stream.
type Option func(*Stream)

// WithMaxSize caps the stream length. Writes past the cap are cut short
// with content.ErrStorageFull, and so are truncates beyond it.
func WithMaxSize(n int64) Option {
	return func(s *Stream) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// New creates a Stream over a fresh in-memory store holding a copy of data.
func New(data []byte, opts ...Option) (*Stream, error) {
	store := afero.NewMemMapFs()

	f, err := afero.TempFile(store, "/", "memvfs-")
	if err != nil {
		return nil, fmt.Errorf("create in-memory store: %w", err)
	}

	if len(data) > 0 {
		if _, err := f.WriteAt(data, 0); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("seed in-memory store: %w", err)
		}
	}

	s := newStream(f, opts)
	s.owned = true
	s.store = store
	s.name = f.Name()
	return s, nil
}

// FromSink creates a Stream over a caller-owned sink. The sink is not
// rewound, truncated or closed; the Stream starts at position 0.
func FromSink(sink Sink, opts ...Option) (*Stream, error) {
	if sink == nil {
		return nil, fmt.Errorf("nil sink: %w", content.ErrInvalidSink)
	}
	return newStream(sink, opts), nil
}

// NewFromSource creates a Stream from raw bytes ([]byte or string) or from
// a Sink. Any other input fails with content.ErrInvalidSink.
func NewFromSource(src any, opts ...Option) (*Stream, error) {
	switch v := src.(type) {
	case []byte:
		return New(v, opts...)
	case string:
		return New([]byte(v), opts...)
	case Sink:
		return FromSink(v, opts...)
	default:
		return nil, fmt.Errorf("expected []byte, string or buffered.Sink, got %T: %w", src, content.ErrInvalidSink)
	}
}

func newStream(sink Sink, opts []Option) *Stream {
	s := &Stream{sink: sink}
	s.Base = content.NewBase(s.Size)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Owned reports whether the Stream owns its backing store.
func (s *Stream) Owned() bool {
	return s.owned
}

// MaxSize returns the length cap, 0 when unbounded.
func (s *Stream) MaxSize() int64 {
	return s.maxSize
}

// Read returns up to count bytes from the current position.
func (s *Stream) Read(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("read count %d: %w", count, content.ErrInvalidSize)
	}
	if s.released {
		return nil, ErrReleased
	}

	pos := s.Tell()
	remaining := s.Size() - pos
	if count == 0 || remaining <= 0 {
		return []byte{}, nil
	}
	if int64(count) > remaining {
		count = int(remaining)
	}

	buf := make([]byte, count)
	n, err := s.sink.ReadAt(buf, pos)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %d bytes at %d: %w", count, pos, err)
	}

	s.Advance(n)
	return buf[:n], nil
}

// Write stores p at the current position, growing the store as needed.
func (s *Stream) Write(p []byte) (int, error) {
	if s.released {
		return 0, ErrReleased
	}
	if len(p) == 0 {
		return 0, nil
	}

	pos := s.Tell()
	data := p
	short := false
	if s.maxSize > 0 {
		room := s.maxSize - pos
		if room <= 0 {
			return 0, fmt.Errorf("write %d bytes at %d: %w", len(p), pos, content.ErrStorageFull)
		}
		if int64(len(data)) > room {
			data = data[:room]
			short = true
		}
	}

	n, err := s.sink.WriteAt(data, pos)
	s.Advance(n)
	if err != nil {
		return n, fmt.Errorf("write %d bytes at %d: %w", len(data), pos, err)
	}
	if short {
		return n, fmt.Errorf("write %d bytes at %d: %w", len(p), pos, content.ErrStorageFull)
	}
	return n, nil
}

// Truncate resizes the store. Growing pads with null bytes; shrinking below
// the position pulls the position back to the new end.
func (s *Stream) Truncate(size int64) error {
	if size < 0 {
		return fmt.Errorf("truncate to %d: %w", size, content.ErrInvalidSize)
	}
	if s.released {
		return ErrReleased
	}
	if s.maxSize > 0 && size > s.maxSize {
		return fmt.Errorf("truncate to %d beyond %d: %w", size, s.maxSize, content.ErrStorageFull)
	}

	if err := s.sink.Truncate(size); err != nil {
		return fmt.Errorf("truncate to %d: %w", size, err)
	}

	s.Clamp(size)
	return nil
}

// Size returns the current length of the store.
func (s *Stream) Size() int64 {
	if s.released || s.sink == nil {
		return 0
	}

	info, err := s.sink.Stat()
	if err != nil {
		logger.Warn("buffered: stat sink: %v", err)
		return 0
	}
	return info.Size()
}

// Flush syncs the sink.
func (s *Stream) Flush() error {
	if s.released {
		return ErrReleased
	}
	if err := s.sink.Sync(); err != nil {
		return fmt.Errorf("sync sink: %w", err)
	}
	return nil
}

// Open takes the advisory lock on descriptor-backed sinks. Calling Open on
// an already locked Stream is a no-op.
func (s *Stream) Open() error {
	if s.released {
		return ErrReleased
	}
	if s.locked {
		return nil
	}

	fd, ok := s.sink.(interface{ Fd() uintptr })
	if !ok {
		return nil
	}

	if err := lockSink(fd.Fd()); err != nil {
		return err
	}

	s.locked = true
	logger.Debug("buffered: locked sink fd=%d", fd.Fd())
	return nil
}

// Close releases the advisory lock, if held. The sink itself stays open.
func (s *Stream) Close() error {
	if !s.locked {
		return nil
	}

	fd := s.sink.(interface{ Fd() uintptr }).Fd()
	if err := unlockSink(fd); err != nil {
		return err
	}

	s.locked = false
	logger.Debug("buffered: unlocked sink fd=%d", fd)
	return nil
}

// Unlink releases the owned in-memory store. For caller-owned sinks it only
// drops the lock.
func (s *Stream) Unlink() error {
	if err := s.Close(); err != nil {
		return err
	}
	if !s.owned || s.released {
		return nil
	}

	if f, ok := s.sink.(afero.File); ok {
		if err := f.Close(); err != nil {
			logger.Warn("buffered: close in-memory store %s: %v", s.name, err)
		}
	}
	if err := s.store.Remove(s.name); err != nil {
		return fmt.Errorf("remove in-memory store %s: %w", s.name, err)
	}

	s.released = true
	s.Clamp(0)
	return nil
}

// Bytes returns a copy of the whole content without moving the position.
func (s *Stream) Bytes() ([]byte, error) {
	if s.released {
		return nil, ErrReleased
	}

	buf := make([]byte, s.Size())
	if len(buf) == 0 {
		return buf, nil
	}

	n, err := s.sink.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return buf[:n], nil
}
