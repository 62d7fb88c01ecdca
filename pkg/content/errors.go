package content

import "errors"

// ============================================================================
// Standard Content Errors
// ============================================================================

// These errors provide a consistent way to indicate common failure conditions
// across all content strategies. Callers that emulate a POSIX surface should
// map them to the errno values noted on each error.
//
// Usage Pattern:
//
//	if err := c.Seek(off, content.SeekStart); err != nil {
//	    if errors.Is(err, content.ErrInvalidSeek) {
//	        return syscall.EINVAL
//	    }
//	    return syscall.EIO
//	}
//
// Error Wrapping:
// Implementations wrap these errors with additional context:
//
//	return fmt.Errorf("seek to %d: %w", target, content.ErrInvalidSeek)

var (
	// ErrInvalidSeek indicates a seek could not be honoured.
	//
	// This error is returned when:
	//   - The origin is not one of SeekStart, SeekCurrent, SeekEnd
	//     (the position is left unchanged)
	//   - The target position is negative or beyond Size()
	//     (the position is reset to 0)
	//
	// Errno Mapping: EINVAL
	ErrInvalidSeek = errors.New("invalid seek")

	// ErrInvalidSize indicates a negative size or count argument.
	//
	// This error is returned when:
	//   - Truncate() called with a negative size
	//   - Read() called with a negative count
	//
	// Errno Mapping: EINVAL
	ErrInvalidSize = errors.New("invalid size")

	// ErrStorageFull indicates the content accepts no more bytes.
	//
	// This error is returned when:
	//   - Write() on a full device (together with a zero count)
	//   - Truncate() on a full device
	//
	// Errno Mapping: ENOSPC
	ErrStorageFull = errors.New("no space left on device")

	// ErrInvalidSink indicates a buffered stream was built from something
	// that is neither a byte sequence nor a random-access sink.
	//
	// This is the only error raised at construction time; it signals a
	// programming error rather than a runtime condition.
	//
	// Errno Mapping: EINVAL
	ErrInvalidSink = errors.New("invalid content sink")

	// ErrNotSupported indicates the strategy cannot perform the operation.
	//
	// Errno Mapping: ENOTSUP
	ErrNotSupported = errors.New("operation not supported")
)
