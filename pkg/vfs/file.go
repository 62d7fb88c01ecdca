// Package vfs provides the file node that owns a Content and hands out
// independent handles over it.
//
// A File is the only owner of its content. Every OpenHandle call returns a
// new handle.Multiplexer over the same File; all of them share the File's
// I/O lock, so their push-act-pull sequences never interleave.
//
// The bare File also satisfies handle.FileHandle: its I/O methods act
// directly on the content position and do not lock. They are what the
// multiplexers call into while holding the lock.
package vfs

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/memvfs/internal/logger"
	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/content/buffered"
	"github.com/marmos91/memvfs/pkg/handle"
)

// DefaultFileMode is the mode of files created without WithMode.
const DefaultFileMode os.FileMode = 0644

// File is a virtual file node.
type File struct {
	id string

	// attrMu protects the metadata below.
	attrMu sync.RWMutex
	name   string
	mode   os.FileMode
	uid    uint32
	gid    uint32
	atime  time.Time
	mtime  time.Time
	ctime  time.Time

	// ioMu is shared by every handle of this file and protects content,
	// its position and the open count.
	ioMu    sync.Mutex
	content content.Content
	opened  int

	naming  Naming
	metrics handle.Metrics
}

var _ handle.FileHandle = (*File)(nil)

// FileOption configures a File.
type FileOption func(*File)

// WithMode sets the permission bits.
func WithMode(mode os.FileMode) FileOption {
	return func(f *File) {
		f.mode = mode.Perm()
	}
}

// WithOwner sets the owning user and group.
func WithOwner(uid, gid uint32) FileOption {
	return func(f *File) {
		f.uid = uid
		f.gid = gid
	}
}

// WithNaming sets the naming rules used to validate the file name.
func WithNaming(n Naming) FileOption {
	return func(f *File) {
		f.naming = n
	}
}

// WithMetrics sets the metrics passed to every handle of the file.
func WithMetrics(m handle.Metrics) FileOption {
	return func(f *File) {
		f.metrics = m
	}
}

// NewFile creates a file node owning c. A nil c gets an empty buffered
// stream.
func NewFile(name string, c content.Content, opts ...FileOption) (*File, error) {
	now := time.Now()
	f := &File{
		id:     uuid.NewString(),
		name:   name,
		mode:   DefaultFileMode,
		atime:  now,
		mtime:  now,
		ctime:  now,
		naming: DefaultNaming(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.naming.ValidateName(name); err != nil {
		return nil, err
	}

	if c == nil {
		stream, err := buffered.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create default content: %w", err)
		}
		c = stream
	}
	f.content = c

	logger.Debug("vfs: created file %s (%s) backed by %T", f.name, f.id, c)
	return f, nil
}

// OpenHandle returns a new handle with its own cursor at 0. The content is
// opened when the first handle is created.
func (f *File) OpenHandle() (*handle.Multiplexer, error) {
	f.ioMu.Lock()
	defer f.ioMu.Unlock()

	if f.opened == 0 {
		if err := f.content.Open(); err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name(), err)
		}
	}
	f.opened++

	return handle.New(f,
		handle.WithLocker(&f.ioMu),
		handle.WithRelease(f.releaseLocked),
		handle.WithMetrics(f.metrics),
	), nil
}

// releaseLocked is called by a closing handle with ioMu held. The content
// is closed when the last handle goes away.
func (f *File) releaseLocked() error {
	if f.opened == 0 {
		return nil
	}
	f.opened--
	if f.opened > 0 {
		return nil
	}
	return f.content.Close()
}

// OpenHandles returns the number of handles not yet closed.
func (f *File) OpenHandles() int {
	f.ioMu.Lock()
	defer f.ioMu.Unlock()
	return f.opened
}

// ============================================================================
// Metadata
// ============================================================================

func (f *File) ID() string {
	return f.id
}

func (f *File) Name() string {
	f.attrMu.RLock()
	defer f.attrMu.RUnlock()
	return f.name
}

// SetName renames the file without validation. Use Rename to validate
// against the naming rules.
func (f *File) SetName(name string) {
	f.attrMu.Lock()
	defer f.attrMu.Unlock()
	f.name = name
	f.ctime = time.Now()
}

// Rename validates name against the file's naming rules and applies it.
func (f *File) Rename(name string) error {
	if err := f.naming.ValidateName(name); err != nil {
		return err
	}
	f.SetName(name)
	return nil
}

func (f *File) Mode() os.FileMode {
	f.attrMu.RLock()
	defer f.attrMu.RUnlock()
	return f.mode
}

func (f *File) Chmod(mode os.FileMode) {
	f.attrMu.Lock()
	defer f.attrMu.Unlock()
	f.mode = mode.Perm()
	f.ctime = time.Now()
}

func (f *File) Owner() (uint32, uint32) {
	f.attrMu.RLock()
	defer f.attrMu.RUnlock()
	return f.uid, f.gid
}

func (f *File) Chown(uid, gid uint32) {
	f.attrMu.Lock()
	defer f.attrMu.Unlock()
	f.uid = uid
	f.gid = gid
	f.ctime = time.Now()
}

func (f *File) Times() (time.Time, time.Time, time.Time) {
	f.attrMu.RLock()
	defer f.attrMu.RUnlock()
	return f.atime, f.mtime, f.ctime
}

func (f *File) SetTimes(atime, mtime time.Time) {
	f.attrMu.Lock()
	defer f.attrMu.Unlock()
	f.atime = atime
	f.mtime = mtime
	f.ctime = time.Now()
}

func (f *File) touch(modified bool) {
	now := time.Now()
	f.attrMu.Lock()
	defer f.attrMu.Unlock()
	if modified {
		f.mtime = now
		f.ctime = now
		return
	}
	f.atime = now
}

// ============================================================================
// Content Accessors
// ============================================================================

// Content returns the backing content.
func (f *File) Content() content.Content {
	f.ioMu.Lock()
	defer f.ioMu.Unlock()
	return f.content
}

// SetContent replaces the backing content. If handles are open, the new
// content is opened first. The previous content is closed and unlinked.
// Handles keep their cursors; they are re-validated against the new
// content on their next operation.
func (f *File) SetContent(c content.Content) error {
	if c == nil {
		return fmt.Errorf("set content of %s: %w", f.Name(), content.ErrInvalidSink)
	}

	f.ioMu.Lock()
	defer f.ioMu.Unlock()

	if c == f.content {
		return nil
	}

	if f.opened > 0 {
		if err := c.Open(); err != nil {
			return fmt.Errorf("open replacement content: %w", err)
		}
	}

	old := f.content
	f.content = c
	f.touch(true)

	var errs []error
	if f.opened > 0 {
		errs = append(errs, old.Close())
	}
	errs = append(errs, old.Unlink())
	if err := errors.Join(errs...); err != nil {
		logger.Warn("vfs: release replaced content of %s: %v", f.Name(), err)
		return fmt.Errorf("release replaced content: %w", err)
	}

	logger.Debug("vfs: replaced content of %s with %T", f.Name(), c)
	return nil
}

// ============================================================================
// I/O (unlocked; see package doc)
// ============================================================================

func (f *File) Open() error {
	return f.content.Open()
}

func (f *File) Close() error {
	return f.content.Close()
}

func (f *File) Read(count int) ([]byte, error) {
	data, err := f.content.Read(count)
	if err == nil {
		f.touch(false)
	}
	return data, err
}

func (f *File) Write(data []byte) (int, error) {
	n, err := f.content.Write(data)
	if n > 0 {
		f.touch(true)
	}
	return n, err
}

func (f *File) Truncate(size int64) error {
	if err := f.content.Truncate(size); err != nil {
		return err
	}
	f.touch(true)
	return nil
}

func (f *File) Seek(offset int64, origin content.Origin) error {
	return f.content.Seek(offset, origin)
}

func (f *File) Tell() int64 {
	return f.content.Tell()
}

func (f *File) EOF() bool {
	return f.content.EOF()
}

func (f *File) Flush() error {
	return f.content.Flush()
}

func (f *File) Size() int64 {
	return f.content.Size()
}

// Unlink releases the content. Called when the node is deleted.
func (f *File) Unlink() error {
	return f.content.Unlink()
}
