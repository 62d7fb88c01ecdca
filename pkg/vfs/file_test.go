package vfs

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/content/buffered"
	"github.com/marmos91/memvfs/pkg/content/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingContent wraps a Content and counts lifecycle calls.
type trackingContent struct {
	content.Content
	opens, closes, unlinks int
	openErr                error
}

func (c *trackingContent) Open() error {
	if c.openErr != nil {
		return c.openErr
	}
	c.opens++
	return c.Content.Open()
}

func (c *trackingContent) Close() error {
	c.closes++
	return c.Content.Close()
}

func (c *trackingContent) Unlink() error {
	c.unlinks++
	return c.Content.Unlink()
}

func newTracked(t *testing.T) *trackingContent {
	t.Helper()
	stream, err := buffered.New([]byte("tracked"))
	require.NoError(t, err)
	return &trackingContent{Content: stream}
}

func TestNewFile_Defaults(t *testing.T) {
	f, err := NewFile("notes.txt", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID())
	assert.Equal(t, "notes.txt", f.Name())
	assert.Equal(t, DefaultFileMode, f.Mode())
	assert.Equal(t, int64(0), f.Size())
	assert.IsType(t, &buffered.Stream{}, f.Content())

	atime, mtime, ctime := f.Times()
	assert.False(t, atime.IsZero())
	assert.Equal(t, atime, mtime)
	assert.Equal(t, mtime, ctime)
}

func TestNewFile_UniqueIDs(t *testing.T) {
	a, err := NewFile("a", nil)
	require.NoError(t, err)
	b, err := NewFile("a", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewFile_Options(t *testing.T) {
	f, err := NewFile("dev", device.NewNull(),
		WithMode(os.ModeDevice|0600),
		WithOwner(1000, 100),
	)
	require.NoError(t, err)

	assert.Equal(t, os.FileMode(0600), f.Mode(), "only permission bits are kept")
	uid, gid := f.Owner()
	assert.Equal(t, uint32(1000), uid)
	assert.Equal(t, uint32(100), gid)
}

func TestNewFile_InvalidName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b", "nul\x00"} {
		_, err := NewFile(name, nil)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	naming := DefaultNaming()
	naming.Blacklist = append(naming.Blacklist, ":")
	_, err := NewFile("c:d", nil, WithNaming(naming))
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestFile_OpenCloseLifecycle(t *testing.T) {
	tracked := newTracked(t)
	f, err := NewFile("tracked", tracked)
	require.NoError(t, err)

	a, err := f.OpenHandle()
	require.NoError(t, err)
	b, err := f.OpenHandle()
	require.NoError(t, err)

	assert.Equal(t, 1, tracked.opens, "content opened once for the first handle")
	assert.Equal(t, 2, f.OpenHandles())

	require.NoError(t, a.Close())
	assert.Equal(t, 0, tracked.closes)

	require.NoError(t, b.Close())
	assert.Equal(t, 1, tracked.closes, "content closed with the last handle")
	assert.Equal(t, 0, f.OpenHandles())

	// Reopening opens the content again
	c, err := f.OpenHandle()
	require.NoError(t, err)
	assert.Equal(t, 2, tracked.opens)
	require.NoError(t, c.Close())
}

func TestFile_OpenFailure(t *testing.T) {
	tracked := newTracked(t)
	tracked.openErr = errors.New("boom")

	f, err := NewFile("broken", tracked)
	require.NoError(t, err)

	_, err = f.OpenHandle()
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 0, f.OpenHandles())
}

func TestFile_SetContent(t *testing.T) {
	old := newTracked(t)
	f, err := NewFile("swap", old)
	require.NoError(t, err)

	h, err := f.OpenHandle()
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Seek(5, content.SeekStart))

	replacement := newTracked(t)
	require.NoError(t, replacement.Truncate(2))
	require.NoError(t, f.SetContent(replacement))

	assert.Equal(t, 1, replacement.opens, "replacement opened for the live handle")
	assert.Equal(t, 1, old.closes)
	assert.Equal(t, 1, old.unlinks)
	assert.Same(t, replacement, f.Content())

	// The cursor no longer fits the new content
	assert.Equal(t, int64(0), h.Tell())
	assert.Equal(t, int64(2), h.Size())
}

func TestFile_SetContentWithoutHandles(t *testing.T) {
	old := newTracked(t)
	f, err := NewFile("swap", old)
	require.NoError(t, err)

	replacement := newTracked(t)
	require.NoError(t, f.SetContent(replacement))

	assert.Equal(t, 0, replacement.opens)
	assert.Equal(t, 0, old.closes)
	assert.Equal(t, 1, old.unlinks)
}

func TestFile_SetContentSameOrNil(t *testing.T) {
	tracked := newTracked(t)
	f, err := NewFile("same", tracked)
	require.NoError(t, err)

	require.NoError(t, f.SetContent(tracked))
	assert.Equal(t, 0, tracked.unlinks)

	assert.ErrorIs(t, f.SetContent(nil), content.ErrInvalidSink)
}

func TestFile_Rename(t *testing.T) {
	f, err := NewFile("before", nil)
	require.NoError(t, err)

	require.NoError(t, f.Rename("after"))
	assert.Equal(t, "after", f.Name())

	assert.ErrorIs(t, f.Rename("a/b"), ErrInvalidName)
	assert.Equal(t, "after", f.Name())
}

func TestFile_TimesTrackIO(t *testing.T) {
	f, err := NewFile("timed", nil)
	require.NoError(t, err)

	epoch := time.Unix(0, 0)
	f.SetTimes(epoch, epoch)

	h, err := f.OpenHandle()
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Write([]byte("x"))
	require.NoError(t, err)
	atime, mtime, _ := f.Times()
	assert.Equal(t, epoch, atime)
	assert.True(t, mtime.After(epoch))

	require.NoError(t, h.Seek(0, content.SeekStart))
	_, err = h.Read(1)
	require.NoError(t, err)
	atime, _, _ = f.Times()
	assert.True(t, atime.After(epoch))
}

func TestFile_FailedWriteKeepsMtime(t *testing.T) {
	f, err := NewFile("full", device.NewFull())
	require.NoError(t, err)

	epoch := time.Unix(0, 0)
	f.SetTimes(epoch, epoch)

	h, err := f.OpenHandle()
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Write([]byte("x"))
	assert.ErrorIs(t, err, content.ErrStorageFull)
	_, mtime, _ := f.Times()
	assert.Equal(t, epoch, mtime)
}

func TestFile_ChmodChown(t *testing.T) {
	f, err := NewFile("meta", nil)
	require.NoError(t, err)

	_, _, before := f.Times()
	time.Sleep(time.Millisecond)

	f.Chmod(0755 | os.ModeSetuid)
	assert.Equal(t, os.FileMode(0755), f.Mode())

	f.Chown(7, 8)
	uid, gid := f.Owner()
	assert.Equal(t, uint32(7), uid)
	assert.Equal(t, uint32(8), gid)

	_, _, after := f.Times()
	assert.True(t, after.After(before))
}
