package generation

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff computes the wait before an attempt: min(Max, Base*2^n) plus a
// random jitter in [0, Jitter). The first attempt (n == 0) never waits.
type Backoff struct {
	Base   time.Duration
	Max    time.Duration
	Jitter time.Duration

	// rand returns a value in [0, 1). Nil uses math/rand/v2.
	rand func() float64
}

// DefaultBackoff returns the 1s base, 10s cap, 1s jitter policy.
func DefaultBackoff() Backoff {
	return Backoff{
		Base:   time.Second,
		Max:    10 * time.Second,
		Jitter: time.Second,
	}
}

// Delay returns the wait before attempt n (0-based).
func (b Backoff) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}

	wait := b.Base
	for i := 0; i < n && wait < b.Max; i++ {
		if wait > b.Max/2 {
			wait = b.Max
			break
		}
		wait *= 2
	}
	if wait > b.Max {
		wait = b.Max
	}

	if b.Jitter > 0 {
		r := b.rand
		if r == nil {
			r = rand.Float64
		}
		wait += time.Duration(r() * float64(b.Jitter))
	}

	return wait
}

func (b Backoff) isZero() bool {
	return b.Base == 0 && b.Max == 0 && b.Jitter == 0
}

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
