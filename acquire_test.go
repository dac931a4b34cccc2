package semaphore_test

import (
	"context"
	"testing"
	"time"

	"github.com/neekrasov/semaphore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAcquire_Immediate(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(2)
	ctx := context.Background()

	require.NoError(t, sem.Acquire(ctx))
	require.NoError(t, sem.Acquire(ctx))
	assert.False(t, sem.TryAcquire())

	sem.AddPermits(1)
	assert.True(t, sem.TryAcquire())
}

func TestAcquire_WakesOnAddPermits(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(0)

	done := make(chan error, 1)
	go func() {
		done <- sem.Acquire(context.Background())
	}()

	select {
	case <-done:
		t.Fatal("acquire on an empty semaphore must suspend")
	case <-time.After(50 * time.Millisecond):
	}

	sem.AddPermits(1)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not woken after permits were returned")
	}

	assert.Equal(t, uint64(0), sem.Available())
}

func TestAcquire_ContextCancelled(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sem.Acquire(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), sem.Available())
}

func TestAcquireN_Zero(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, sem.AcquireN(ctx, 0), "zero request is a no-op success")
}

func TestAcquireN_BatchCompletesIncrementally(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(3)

	done := make(chan error, 1)
	go func() {
		done <- sem.AcquireN(context.Background(), 5)
	}()

	select {
	case <-done:
		t.Fatal("batch request must block until the full amount is granted")
	case <-time.After(50 * time.Millisecond):
	}

	sem.AddPermits(2)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("batch request did not complete after supply reached the request")
	}

	assert.Equal(t, uint64(0), sem.Available(), "the batch must consume exactly five permits")
}

func TestAcquireN_CancelRefundsPartialGrant(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sem.AcquireN(ctx, 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(2), sem.Available(),
		"partially granted permits must be refunded on cancellation")
}

func TestAcquireTimeout_Success(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(1)

	assert.True(t, sem.AcquireTimeout(time.Second))
	assert.Equal(t, uint64(0), sem.Available())
}

func TestAcquireTimeout_Expires(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(0)

	start := time.Now()
	ok := sem.AcquireTimeout(100 * time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Equal(t, uint64(0), sem.Available())
}

func TestAcquireNTimeout_RefundsOnExpiry(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(2)

	ok := sem.AcquireNTimeout(5, 100*time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, uint64(2), sem.Available(),
		"a timed-out batch must not leave the pool short")
}

func TestAcquireNTimeout_CompletedBySupply(t *testing.T) {
	t.Parallel()

	sem := semaphore.New(0)

	go func() {
		time.Sleep(50 * time.Millisecond)
		sem.AddPermits(3)
	}()

	assert.True(t, sem.AcquireNTimeout(3, 2*time.Second))
	assert.Equal(t, uint64(0), sem.Available())
}

func TestAcquire_ManyWaiters(t *testing.T) {
	t.Parallel()

	const waiters = 8

	sem := semaphore.New(0)

	var g errgroup.Group
	for i := 0; i < waiters; i++ {
		g.Go(func() error {
			return sem.Acquire(context.Background())
		})
	}

	// Feed permits one at a time so waiters complete across several
	// broadcast rounds, not a single wake-all.
	for i := 0; i < waiters; i++ {
		time.Sleep(5 * time.Millisecond)
		sem.AddPermits(1)
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, uint64(0), sem.Available())
}

func TestAcquire_ContentionConservesPermits(t *testing.T) {
	t.Parallel()

	const (
		initial = 3
		workers = 12
		iters   = 50
	)

	sem := semaphore.New(initial)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				if err := sem.Acquire(context.Background()); err != nil {
					return err
				}
				sem.Release()
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, uint64(initial), sem.Available())
}
