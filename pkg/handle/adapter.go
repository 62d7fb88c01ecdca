package handle

import (
	"fmt"
	"io"

	"github.com/marmos91/memvfs/pkg/content"
)

// Adapter exposes a FileHandle through the standard io interfaces so
// handles can be used with io.Copy, bufio and friends.
//
// Read returns io.EOF when the handle yields no bytes for a non-empty
// buffer. Write reports io.ErrShortWrite when the handle accepts fewer
// bytes than given without saying why.
type Adapter struct {
	h FileHandle
}

var (
	_ io.ReadWriteSeeker = (*Adapter)(nil)
	_ io.Closer          = (*Adapter)(nil)
)

// NewAdapter wraps h.
func NewAdapter(h FileHandle) *Adapter {
	return &Adapter{h: h}
}

// Handle returns the wrapped handle.
func (a *Adapter) Handle() FileHandle {
	return a.h
}

func (a *Adapter) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	data, err := a.h.Read(len(p))
	n := copy(p, data)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (a *Adapter) Write(p []byte) (int, error) {
	n, err := a.h.Write(p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Seek maps whence onto content.Origin and returns the resulting cursor.
func (a *Adapter) Seek(offset int64, whence int) (int64, error) {
	if err := a.h.Seek(offset, content.Origin(whence)); err != nil {
		return a.h.Tell(), fmt.Errorf("seek %d whence %d: %w", offset, whence, err)
	}
	return a.h.Tell(), nil
}

func (a *Adapter) Close() error {
	return a.h.Close()
}
