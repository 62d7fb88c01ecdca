// Package content defines what backs the bytes of a virtual file.
//
// A Content is a byte-addressable extent with a single position register.
// Concrete strategies live in sub-packages:
//   - device: synthetic devices (null, zero, random, full) with no storage
//   - buffered: a resizable byte store, in memory or over a caller-owned sink
//
// Every strategy embeds Base, which implements the seek/tell/EOF arithmetic
// once in terms of the strategy's Size. Strategies supply only Read, Write,
// Truncate and Size, and override EOF or Flush where the device demands it.
//
// Position Semantics:
// The position of a Content is shared by everyone holding it. Independent
// cursors are provided by the handle package, which pushes its own cursor
// into the content before each operation and pulls the result back after.
//
// Thread Safety:
// Content implementations are NOT safe for concurrent use. Callers sharing a
// Content across goroutines must serialize access (handle.Multiplexer does
// this with the locker supplied by the owning file node).
package content

import "io"

// Origin is the reference point of a Seek offset.
//
// The values match io.SeekStart, io.SeekCurrent and io.SeekEnd so io
// constants can be passed through unchanged.
type Origin int

const (
	// SeekStart seeks relative to the start of the content.
	SeekStart Origin = io.SeekStart

	// SeekCurrent seeks relative to the current position.
	SeekCurrent Origin = io.SeekCurrent

	// SeekEnd seeks relative to Size().
	SeekEnd Origin = io.SeekEnd
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case SeekStart:
		return "start"
	case SeekCurrent:
		return "current"
	case SeekEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the three known origins.
func (o Origin) Valid() bool {
	return o == SeekStart || o == SeekCurrent || o == SeekEnd
}

// Content is the contract shared by all content strategies.
//
// Status-style outcomes are reported as errors: a nil error is success.
// Only construction of a strategy may fail hard; per-call failures are
// reported through the returned error and leave the content usable.
type Content interface {
	// Open prepares the content for use. Synthetic strategies do nothing;
	// sink-backed buffers take their advisory lock here.
	Open() error

	// Close releases what Open acquired. It never closes a caller-owned
	// resource.
	Close() error

	// Read returns up to count bytes starting at the current position.
	// Fewer bytes (possibly none) are returned at the end of the content.
	// A nil error with an empty slice is the normal end-of-content result.
	Read(count int) ([]byte, error)

	// Write stores p at the current position and returns the number of
	// bytes accepted. A count lower than len(p) is a capacity failure.
	Write(p []byte) (int, error)

	// Truncate resizes the content. Growing pads with zero bytes.
	Truncate(size int64) error

	// Seek moves the position. On an out-of-range target the position is
	// reset to 0 and ErrInvalidSeek is returned.
	Seek(offset int64, origin Origin) error

	// Tell returns the current position.
	Tell() int64

	// EOF reports whether the position is at or past the end.
	EOF() bool

	// Flush pushes buffered bytes to the backing sink, if there is one.
	Flush() error

	// Size returns the logical size. Synthetic devices always report 0.
	Size() int64

	// Unlink is called when the owning file node drops the content.
	Unlink() error
}
