package handle

import (
	"os"
	"time"

	"github.com/marmos91/memvfs/pkg/content"
)

// Proxy forwards every FileHandle method to an inner handle unchanged.
//
// Decorators embed a *Proxy and shadow only the methods whose behaviour
// differs; everything else is delegated verbatim. The type parameter keeps
// the concrete type of the wrapped handle available through Inner.
type Proxy[H FileHandle] struct {
	inner H
}

// NewProxy creates a Proxy around inner.
func NewProxy[H FileHandle](inner H) *Proxy[H] {
	return &Proxy[H]{inner: inner}
}

// Inner returns the wrapped handle.
func (p *Proxy[H]) Inner() H {
	return p.inner
}

// ============================================================================
// Metadata
// ============================================================================

func (p *Proxy[H]) ID() string {
	return p.inner.ID()
}

func (p *Proxy[H]) Name() string {
	return p.inner.Name()
}

func (p *Proxy[H]) SetName(name string) {
	p.inner.SetName(name)
}

func (p *Proxy[H]) Mode() os.FileMode {
	return p.inner.Mode()
}

func (p *Proxy[H]) Chmod(mode os.FileMode) {
	p.inner.Chmod(mode)
}

func (p *Proxy[H]) Owner() (uint32, uint32) {
	return p.inner.Owner()
}

func (p *Proxy[H]) Chown(uid, gid uint32) {
	p.inner.Chown(uid, gid)
}

func (p *Proxy[H]) Times() (time.Time, time.Time, time.Time) {
	return p.inner.Times()
}

func (p *Proxy[H]) SetTimes(atime, mtime time.Time) {
	p.inner.SetTimes(atime, mtime)
}

// ============================================================================
// Permissions
// ============================================================================

func (p *Proxy[H]) IsReadable(uid, gid uint32) bool {
	return p.inner.IsReadable(uid, gid)
}

func (p *Proxy[H]) IsWritable(uid, gid uint32) bool {
	return p.inner.IsWritable(uid, gid)
}

func (p *Proxy[H]) IsExecutable(uid, gid uint32) bool {
	return p.inner.IsExecutable(uid, gid)
}

// ============================================================================
// Content Accessors
// ============================================================================

func (p *Proxy[H]) Content() content.Content {
	return p.inner.Content()
}

func (p *Proxy[H]) SetContent(c content.Content) error {
	return p.inner.SetContent(c)
}

// ============================================================================
// I/O
// ============================================================================

func (p *Proxy[H]) Open() error {
	return p.inner.Open()
}

func (p *Proxy[H]) Close() error {
	return p.inner.Close()
}

func (p *Proxy[H]) Read(count int) ([]byte, error) {
	return p.inner.Read(count)
}

func (p *Proxy[H]) Write(data []byte) (int, error) {
	return p.inner.Write(data)
}

func (p *Proxy[H]) Truncate(size int64) error {
	return p.inner.Truncate(size)
}

func (p *Proxy[H]) Seek(offset int64, origin content.Origin) error {
	return p.inner.Seek(offset, origin)
}

func (p *Proxy[H]) Tell() int64 {
	return p.inner.Tell()
}

func (p *Proxy[H]) EOF() bool {
	return p.inner.EOF()
}

func (p *Proxy[H]) Flush() error {
	return p.inner.Flush()
}

func (p *Proxy[H]) Size() int64 {
	return p.inner.Size()
}

func (p *Proxy[H]) Unlink() error {
	return p.inner.Unlink()
}
