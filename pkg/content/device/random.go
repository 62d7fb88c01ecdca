package device

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/marmos91/memvfs/pkg/content"
)

// Random is an infinite source of pseudo-random bytes that discards writes.
//
// The generator is NOT cryptographically secure and its output is not meant
// to be replayed; consumers must only rely on the length of what they read.
type Random struct {
	content.Base
	rng *rand.Rand
}

// RandomOption configures a Random device.
type RandomOption func(*Random)

// WithSeed makes the generator deterministic. Intended for reproducing
// a run, not for asserting exact bytes.
func WithSeed(seed uint64) RandomOption {
	return func(d *Random) {
		d.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewRandom creates a random device seeded from the clock unless a seed
// option is given.
func NewRandom(opts ...RandomOption) *Random {
	now := uint64(time.Now().UnixNano())
	d := &Random{rng: rand.New(rand.NewPCG(now, rand.Uint64()))}
	d.Base = content.NewBase(d.Size)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Read returns exactly count pseudo-random bytes.
func (d *Random) Read(count int) ([]byte, error) {
	buf, err := zeros(count)
	if err != nil {
		return nil, err
	}

	var word [8]byte
	for i := 0; i < len(buf); i += len(word) {
		binary.LittleEndian.PutUint64(word[:], d.rng.Uint64())
		copy(buf[i:], word[:])
	}
	return buf, nil
}

// Write discards p and reports it fully written.
func (d *Random) Write(p []byte) (int, error) {
	return len(p), nil
}

// Truncate is a no-op.
func (d *Random) Truncate(size int64) error {
	return nil
}

// EOF is always false: the stream never ends.
func (d *Random) EOF() bool {
	return false
}

// Size is always 0.
func (d *Random) Size() int64 {
	return 0
}
