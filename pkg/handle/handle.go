// Package handle gives several open instances of one file independent
// cursors over a single shared Content.
//
// The building blocks are:
//   - FileHandle: the contract of an open file (metadata, permissions,
//     content accessors and the Content I/O surface)
//   - Proxy: a forwarding base that delegates every FileHandle method to an
//     inner handle, so decorators only override what they change
//   - Multiplexer: a Proxy with a private cursor, created once per open
//
// Push-Act-Pull Protocol:
// The wrapped content has one position register. A Multiplexer treats it as
// scratch space: before an operation it pushes its cursor into the content,
// performs the operation, then pulls the resulting position back into its
// cursor. The cursor is the durable per-handle truth; the content position
// is meaningful only for the duration of one operation. The whole sequence
// runs under the locker shared by all handles of the same file node.
package handle

import (
	"os"
	"time"

	"github.com/marmos91/memvfs/pkg/content"
)

// FileHandle is the contract of an open file.
//
// It embeds content.Content so I/O goes through the same surface whether
// the caller holds a bare file node, a proxy or a multiplexer. Metadata and
// permission methods are forwarded untouched by decorators.
type FileHandle interface {
	content.Content

	// ID returns the stable identifier of the underlying file node.
	ID() string

	// Name returns the file name.
	Name() string

	// SetName renames the file.
	SetName(name string)

	// Mode returns the permission bits.
	Mode() os.FileMode

	// Chmod replaces the permission bits.
	Chmod(mode os.FileMode)

	// Owner returns the owning user and group.
	Owner() (uid, gid uint32)

	// Chown changes the owning user and group.
	Chown(uid, gid uint32)

	// Times returns access, modification and change times.
	Times() (atime, mtime, ctime time.Time)

	// SetTimes sets access and modification times.
	SetTimes(atime, mtime time.Time)

	// IsReadable reports whether uid/gid may read the file.
	IsReadable(uid, gid uint32) bool

	// IsWritable reports whether uid/gid may write the file.
	IsWritable(uid, gid uint32) bool

	// IsExecutable reports whether uid/gid may execute the file.
	IsExecutable(uid, gid uint32) bool

	// Content returns the backing content.
	Content() content.Content

	// SetContent replaces the backing content wholesale.
	SetContent(c content.Content) error
}
