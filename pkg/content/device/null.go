package device

import (
	"fmt"

	"github.com/marmos91/memvfs/pkg/content"
)

// Null discards everything written to it and is always at EOF.
type Null struct {
	content.Base
}

// NewNull creates a null device.
func NewNull() *Null {
	d := &Null{}
	d.Base = content.NewBase(d.Size)
	return d
}

// Read always returns an empty slice.
func (d *Null) Read(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("read count %d: %w", count, content.ErrInvalidSize)
	}
	return []byte{}, nil
}

// Write discards p and reports it fully written.
func (d *Null) Write(p []byte) (int, error) {
	return len(p), nil
}

// Truncate is a no-op.
func (d *Null) Truncate(size int64) error {
	return nil
}

// EOF is always true.
func (d *Null) EOF() bool {
	return true
}

// Size is always 0.
func (d *Null) Size() int64 {
	return 0
}
