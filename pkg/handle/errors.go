package handle

import "errors"

// ErrHandleClosed is returned by I/O on a Multiplexer after Close.
var ErrHandleClosed = errors.New("handle is closed")
