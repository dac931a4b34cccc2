// Package semaphore implements an asynchronous counting semaphore: a
// lock-free permit counter combined with a broadcast notifier that lets
// callers wait for permits without polling.
//
// A *Semaphore is a handle to shared state: copying the pointer is the
// only "clone" operation and produces an equivalent view over the same
// counter and notifier. Handles are safe for concurrent use by any number
// of goroutines without external locking.
//
// Permits are fungible and carry no owner identity. The semaphore does
// not know what a permit represents; callers map permits onto whatever
// resource they are gating (connection slots, worker concurrency, file
// descriptors).
package semaphore

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Semaphore - a counting semaphore with a lock-free fast path.
//
// The permit counter is mutated only through compare-and-swap loops, so
// TryAcquire, TryAcquireN and AddPermits never block. Waiting happens in
// Acquire and its variants, which park on an internal broadcast channel
// and re-run the fast path whenever permits are returned.
type Semaphore struct {
	count atomic.Uint64 // Available permits, never observably negative.

	mu   sync.Mutex
	wake chan struct{} // Closed and replaced on every AddPermits.
}

// New - creates a semaphore with the given number of initial permits.
// Zero is valid and useful: every caller waits until the first AddPermits.
func New(initial uint64) *Semaphore {
	s := &Semaphore{wake: make(chan struct{})}
	s.count.Store(initial)

	return s
}

// TryAcquire - attempts to take one permit without blocking.
// Returns true if a permit was taken.
func (s *Semaphore) TryAcquire() bool {
	return s.TryAcquireN(1) == 1
}

// TryAcquireN - attempts to take up to n permits without blocking and
// returns how many were actually taken: min(available, n) in a single
// atomic step, 0 when none are available. A partial grant is kept by the
// caller; pairing every grant with a later AddPermits of the same amount
// is the caller's responsibility.
func (s *Semaphore) TryAcquireN(n uint64) uint64 {
	if n == 0 {
		return 0
	}

	for {
		cur := s.count.Load()
		if cur == 0 {
			return 0
		}

		take := n
		if cur < n {
			take = cur
		}

		if s.count.CompareAndSwap(cur, cur-take) {
			return take
		}
	}
}

// AddPermits - returns n permits to the pool and wakes every waiter so
// they can re-attempt the fast path. Adding zero permits is a no-op.
//
// The counter does not track a capacity ceiling: returning more permits
// than were ever taken plus the initial count silently grows the pool,
// and overflowing the counter is a caller contract violation.
func (s *Semaphore) AddPermits(n uint64) {
	if n == 0 {
		return
	}

	s.count.Add(n)
	s.broadcast()
}

// Release - returns a single permit, the counterpart of Acquire.
func (s *Semaphore) Release() {
	s.AddPermits(1)
}

// Available - reports the number of permits not currently held.
// The value is a snapshot and may be stale by the time it is observed.
func (s *Semaphore) Available() uint64 {
	return s.count.Load()
}

// String - returns a human-readable representation of the semaphore state.
func (s *Semaphore) String() string {
	return fmt.Sprintf("Semaphore(available=%d)", s.count.Load())
}

// waitSignal - registers interest in the next broadcast. The returned
// channel is closed by the next AddPermits. Callers must grab the channel
// before re-checking the counter, otherwise a permit returned between the
// check and the registration would be missed.
func (s *Semaphore) waitSignal() <-chan struct{} {
	s.mu.Lock()
	ch := s.wake
	s.mu.Unlock()

	return ch
}

// broadcast - wakes all currently registered waiters by closing the
// current wake channel and installing a fresh one.
func (s *Semaphore) broadcast() {
	s.mu.Lock()
	close(s.wake)
	s.wake = make(chan struct{})
	s.mu.Unlock()
}
