package content

import (
	"fmt"
	"math"
)

// Base implements the parts of Content every strategy shares: open/close,
// seek/tell/EOF arithmetic, flush and unlink.
//
// Base does not know the size of the content. The embedding strategy passes
// its own Size method at construction:
//
//	s := &Stream{}
//	s.Base = content.NewBase(s.Size)
//
// Strategies then only implement Read, Write, Truncate and Size, and may
// shadow EOF or Flush when the device semantics differ.
type Base struct {
	pos  int64
	size func() int64
}

// NewBase creates a Base whose bounds are given by size.
func NewBase(size func() int64) Base {
	return Base{size: size}
}

// Open is a no-op.
func (b *Base) Open() error {
	return nil
}

// Close is a no-op.
func (b *Base) Close() error {
	return nil
}

// Seek moves the position.
//
// The candidate position is computed from origin:
//   - SeekStart: offset
//   - SeekCurrent: Tell() + offset
//   - SeekEnd: Size() + offset
//
// Every failure resets the position to 0: an unknown origin, an overflow,
// or a candidate outside [0, Size()]. Callers must re-seek explicitly after
// a failed seek.
func (b *Base) Seek(offset int64, origin Origin) error {
	var (
		base   int64
		target int64
	)

	switch origin {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = b.pos
	case SeekEnd:
		base = b.Size()
	default:
		b.pos = 0
		return fmt.Errorf("origin %d: %w", int(origin), ErrInvalidSeek)
	}

	if (offset > 0 && base > math.MaxInt64-offset) || (offset < 0 && base < math.MinInt64-offset) {
		b.pos = 0
		return fmt.Errorf("offset %d from %s overflows: %w", offset, origin, ErrInvalidSeek)
	}
	target = base + offset

	if target < 0 || target > b.Size() {
		b.pos = 0
		return fmt.Errorf("target %d outside [0, %d]: %w", target, b.Size(), ErrInvalidSeek)
	}

	b.pos = target
	return nil
}

// Tell returns the current position.
func (b *Base) Tell() int64 {
	return b.pos
}

// EOF reports whether the position is at or beyond Size().
func (b *Base) EOF() bool {
	return b.pos >= b.Size()
}

// Flush is a no-op.
func (b *Base) Flush() error {
	return nil
}

// Unlink is a no-op.
func (b *Base) Unlink() error {
	return nil
}

// Size returns the size reported by the embedding strategy, or 0 when the
// Base was built without one.
func (b *Base) Size() int64 {
	if b.size == nil {
		return 0
	}
	return b.size()
}

// Advance moves the position forward by n bytes after a successful read
// or write. It does not validate against Size(): a write may legitimately
// move the position to the new end of the content.
func (b *Base) Advance(n int) {
	b.pos += int64(n)
}

// Clamp pulls the position back to limit when it lies beyond it. Used after
// a shrinking truncate.
func (b *Base) Clamp(limit int64) {
	if b.pos > limit {
		b.pos = limit
	}
}
