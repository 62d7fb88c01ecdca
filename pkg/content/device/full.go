package device

import (
	"fmt"

	"github.com/marmos91/memvfs/pkg/content"
)

// Full simulates a device with no space left. Reads behave like Zero;
// writes and truncates are refused.
type Full struct {
	content.Base
}

// NewFull creates a full device.
func NewFull() *Full {
	d := &Full{}
	d.Base = content.NewBase(d.Size)
	return d
}

// Read returns exactly count null bytes.
func (d *Full) Read(count int) ([]byte, error) {
	return zeros(count)
}

// Write accepts nothing. The zero count is the capacity signal; a non-empty
// p additionally yields ErrStorageFull.
func (d *Full) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return 0, fmt.Errorf("write %d bytes: %w", len(p), content.ErrStorageFull)
}

// Truncate always fails.
func (d *Full) Truncate(size int64) error {
	return fmt.Errorf("truncate to %d: %w", size, content.ErrStorageFull)
}

// EOF is always false.
func (d *Full) EOF() bool {
	return false
}

// Size is always 0.
func (d *Full) Size() int64 {
	return 0
}
