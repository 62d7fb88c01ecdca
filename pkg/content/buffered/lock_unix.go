//go:build unix

package buffered

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// lockSink takes a non-blocking exclusive advisory lock.
func lockSink(fd uintptr) error {
	if err := unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) {
			return fmt.Errorf("flock fd %d: %w", fd, ErrLocked)
		}
		return fmt.Errorf("flock fd %d: %w", fd, err)
	}
	return nil
}

func unlockSink(fd uintptr) error {
	if err := unix.Flock(int(fd), unix.LOCK_UN); err != nil {
		return fmt.Errorf("unlock fd %d: %w", fd, err)
	}
	return nil
}
