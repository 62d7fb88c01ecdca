//go:build !unix

package buffered

// Advisory locking is only implemented on unix; elsewhere it is a no-op.
func lockSink(fd uintptr) error { return nil }

func unlockSink(fd uintptr) error { return nil }
