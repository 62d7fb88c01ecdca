package ratelimiter

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// RateLimiter throttles byte transfers using a token bucket where one token
// is one byte.
//
// A transfer larger than the burst is split into burst-sized chunks, each of
// which waits for its tokens before being passed on.
//
// Thread safety:
// All methods are safe for concurrent use.
type RateLimiter struct {
	limiter *rate.Limiter
}

// New creates a RateLimiter allowing bytesPerSecond sustained throughput.
// The burst defaults to one second worth of bytes when zero.
//
// bytesPerSecond == 0 disables throttling.
func New(bytesPerSecond, burst uint64) *RateLimiter {
	if bytesPerSecond == 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst == 0 {
		burst = bytesPerSecond
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), int(burst)),
	}
}

// Unlimited reports whether the limiter lets everything through.
func (r *RateLimiter) Unlimited() bool {
	return r.limiter.Limit() == rate.Inf
}

// Burst returns the largest chunk handed through at once.
func (r *RateLimiter) Burst() int {
	return r.limiter.Burst()
}

// WaitN blocks until n bytes may pass or ctx is done.
func (r *RateLimiter) WaitN(ctx context.Context, n int) error {
	if r.Unlimited() || n <= 0 {
		return nil
	}
	for n > 0 {
		chunk := min(n, r.limiter.Burst())
		if err := r.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Writer returns an io.Writer that throttles writes to w.
func (r *RateLimiter) Writer(ctx context.Context, w io.Writer) io.Writer {
	if r.Unlimited() {
		return w
	}
	return &writer{ctx: ctx, w: w, r: r}
}

type writer struct {
	ctx context.Context
	w   io.Writer
	r   *RateLimiter
}

func (tw *writer) Write(p []byte) (int, error) {
	var written int
	for len(p) > 0 {
		chunk := min(len(p), tw.r.Burst())
		if err := tw.r.limiter.WaitN(tw.ctx, chunk); err != nil {
			return written, err
		}
		n, err := tw.w.Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
	}
	return written, nil
}
