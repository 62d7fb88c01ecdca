package device

import "github.com/marmos91/memvfs/pkg/content"

// Zero is an infinite source of null bytes that discards writes.
type Zero struct {
	content.Base
}

// NewZero creates a zero device.
func NewZero() *Zero {
	d := &Zero{}
	d.Base = content.NewBase(d.Size)
	return d
}

// Read returns exactly count null bytes.
func (d *Zero) Read(count int) ([]byte, error) {
	return zeros(count)
}

// Write discards p and reports it fully written.
func (d *Zero) Write(p []byte) (int, error) {
	return len(p), nil
}

// Truncate is a no-op.
func (d *Zero) Truncate(size int64) error {
	return nil
}

// EOF is always false: the stream never ends.
func (d *Zero) EOF() bool {
	return false
}

// Size is always 0.
func (d *Zero) Size() int64 {
	return 0
}
