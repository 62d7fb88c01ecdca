package vfs

// ============================================================================
// Permission Checks
// ============================================================================

// Permission check logic:
//   - Root (UID 0): Always granted
//   - Owner: Check owner bit
//   - Group member: Check group bit
//   - Other: Check other bit

const (
	permRead    = 04
	permWrite   = 02
	permExecute = 01
)

// IsReadable reports whether uid/gid may read the file.
func (f *File) IsReadable(uid, gid uint32) bool {
	return f.hasPermission(uid, gid, permRead)
}

// IsWritable reports whether uid/gid may write the file.
func (f *File) IsWritable(uid, gid uint32) bool {
	return f.hasPermission(uid, gid, permWrite)
}

// IsExecutable reports whether uid/gid may execute the file.
func (f *File) IsExecutable(uid, gid uint32) bool {
	return f.hasPermission(uid, gid, permExecute)
}

func (f *File) hasPermission(uid, gid uint32, bit uint32) bool {
	// Root user bypasses all permission checks
	if uid == 0 {
		return true
	}

	f.attrMu.RLock()
	defer f.attrMu.RUnlock()

	mode := uint32(f.mode.Perm())

	// Owner permissions
	if uid == f.uid {
		return mode&(bit<<6) != 0
	}

	// Group permissions
	if gid == f.gid {
		return mode&(bit<<3) != 0
	}

	// Other permissions
	return mode&bit != 0
}
