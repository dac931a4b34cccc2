package semaphore

import (
	"context"
	"time"
)

// Acquire - takes one permit, suspending until one becomes available or
// the context is done. Returns nil on success and ctx.Err() if the wait
// was abandoned.
func (s *Semaphore) Acquire(ctx context.Context) error {
	return s.AcquireN(ctx, 1)
}

// AcquireN - takes n permits, accumulating partial grants across fast-path
// attempts as permits trickle in. The call completes only once all n
// permits have been granted to it.
//
// If the context is cancelled mid-flight, any partially granted permits
// are refunded to the pool before ctx.Err() is returned, so an abandoned
// batch request never leaks capacity. Requesting zero permits succeeds
// immediately.
func (s *Semaphore) AcquireN(ctx context.Context, n uint64) error {
	var acquired uint64
	for {
		acquired += s.TryAcquireN(n - acquired)
		if acquired == n {
			return nil
		}

		wake := s.waitSignal()

		// Permits may have been returned between the failed attempt and
		// the registration above; re-check before parking so that wakeup
		// is never missed.
		acquired += s.TryAcquireN(n - acquired)
		if acquired == n {
			return nil
		}

		select {
		case <-wake:
		case <-ctx.Done():
			if acquired > 0 {
				s.AddPermits(acquired)
			}

			return ctx.Err()
		}
	}
}

// AcquireTimeout - takes one permit, waiting at most d. Returns true if
// the permit was taken and false on timeout.
func (s *Semaphore) AcquireTimeout(d time.Duration) bool {
	return s.AcquireNTimeout(1, d)
}

// AcquireNTimeout - takes n permits, waiting at most d for the full
// amount. Returns true once all n permits were granted, false if the
// deadline elapsed first.
//
// The acquire and the deadline race, and exactly one of them wins: either
// the request completes and keeps its permits, or it times out and every
// partially granted permit is refunded. A timed-out call never leaves the
// pool short and never double-frees a permit.
func (s *Semaphore) AcquireNTimeout(n uint64, d time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	return s.AcquireN(ctx, n) == nil
}
