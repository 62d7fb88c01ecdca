package handle_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/handle"
	"github.com/marmos91/memvfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Each goroutine owns one handle and one disjoint region of the file. With
// the file's shared locker, cursors never bleed between handles.
func TestMultiplexer_ConcurrentHandles(t *testing.T) {
	const (
		workers = 8
		region  = 256
		chunk   = 16
	)

	f := newFile(t, workers*region)

	handles := make([]*handle.Multiplexer, workers)
	for i := range handles {
		h, err := f.OpenHandle()
		require.NoError(t, err)
		handles[i] = h
	}

	var g errgroup.Group
	for i, h := range handles {
		g.Go(func() error {
			if err := h.Seek(int64(i*region), content.SeekStart); err != nil {
				return err
			}

			fill := bytes.Repeat([]byte{byte('a' + i)}, chunk)
			for written := 0; written < region; written += chunk {
				n, err := h.Write(fill)
				if err != nil {
					return err
				}
				if n != chunk {
					return fmt.Errorf("handle %d: short write %d", i, n)
				}
			}

			if got, want := h.Tell(), int64((i+1)*region); got != want {
				return fmt.Errorf("handle %d: cursor %d, want %d", i, got, want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	reader, err := f.OpenHandle()
	require.NoError(t, err)
	defer reader.Close()

	for i := 0; i < workers; i++ {
		data, err := reader.Read(region)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{byte('a' + i)}, region), data, "region %d", i)
	}

	for _, h := range handles {
		require.NoError(t, h.Close())
	}
	assert.Equal(t, 1, f.OpenHandles())
}

func TestMultiplexer_ConcurrentReaders(t *testing.T) {
	f, err := vfs.NewFile("text", nil)
	require.NoError(t, err)

	writer, err := f.OpenHandle()
	require.NoError(t, err)
	payload := []byte("0123456789abcdefghijklmnopqrstuvwxyz")
	_, err = writer.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			h, err := f.OpenHandle()
			if err != nil {
				return err
			}
			defer h.Close()

			var got []byte
			for !h.EOF() {
				data, err := h.Read(5)
				if err != nil {
					return err
				}
				got = append(got, data...)
			}
			if !bytes.Equal(got, payload) {
				return fmt.Errorf("reader %d: got %q", i, got)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 0, f.OpenHandles())
}

// Size, Flush and Unlink take the file's locker like the cursor operations,
// so they may run alongside reads and seeks on other handles.
func TestMultiplexer_ConcurrentContentOperations(t *testing.T) {
	f := newFile(t, 64)

	a, err := f.OpenHandle()
	require.NoError(t, err)
	defer a.Close()
	b, err := f.OpenHandle()
	require.NoError(t, err)
	defer b.Close()

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			if err := a.Unlink(); !errors.Is(err, content.ErrNotSupported) {
				return fmt.Errorf("unlink %d: %v", i, err)
			}
			if err := a.Flush(); err != nil {
				return err
			}
			if size := a.Size(); size != 64 {
				return fmt.Errorf("size %d, want 64", size)
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			if err := b.Seek(int64(i%64), content.SeekStart); err != nil {
				return err
			}
			if _, err := b.Read(1); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	require.NoError(t, b.Seek(0, content.SeekStart))
	data, err := b.Read(64)
	require.NoError(t, err)
	assert.Len(t, data, 64, "content survives unlink attempts through a handle")
}
