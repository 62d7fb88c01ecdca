// Package device implements synthetic content strategies that model the
// classic character devices: /dev/null, /dev/zero, /dev/urandom and
// /dev/full.
//
// Devices store no bytes. Their Size is always 0, so the only valid seek
// target is 0, and reads and writes never move the position. Reporting 0
// for the infinite sources is deliberate: they are unbounded, not large.
package device

import (
	"fmt"
	"maps"
	"slices"

	"github.com/marmos91/memvfs/pkg/content"
)

// Kind names a synthetic device.
type Kind string

const (
	KindNull   Kind = "null"
	KindZero   Kind = "zero"
	KindRandom Kind = "random"
	KindFull   Kind = "full"
)

var constructors = map[Kind]func() content.Content{
	KindNull:   func() content.Content { return NewNull() },
	KindZero:   func() content.Content { return NewZero() },
	KindRandom: func() content.Content { return NewRandom() },
	KindFull:   func() content.Content { return NewFull() },
}

// New creates a device by kind.
func New(kind Kind) (content.Content, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown device %q: %w", kind, content.ErrNotSupported)
	}
	return ctor(), nil
}

// Kinds returns the known device kinds, sorted.
func Kinds() []Kind {
	return slices.Sorted(maps.Keys(constructors))
}

// zeros returns count null bytes.
func zeros(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("read count %d: %w", count, content.ErrInvalidSize)
	}
	return make([]byte, count), nil
}
