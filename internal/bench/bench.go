// Package bench runs a bounded-concurrency load test: a pool of workers
// competes for semaphore permits and performs compression round trips
// while holding them, which makes permit leaks and over-admission
// directly observable.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/neekrasov/semaphore"
	"github.com/neekrasov/semaphore/internal/bench/workload"
	"github.com/neekrasov/semaphore/internal/config"
	"github.com/neekrasov/semaphore/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats - aggregate results of a bench run.
type Stats struct {
	Completed     int64         // Iterations that acquired permits and finished the workload.
	TimedOut      int64         // Iterations that gave up waiting for permits.
	MaxConcurrent int64         // Highest number of workers observed inside the guarded section.
	Elapsed       time.Duration // Wall-clock duration of the run.
}

// Runner - executes the configured load against one shared semaphore.
type Runner struct {
	sem     *semaphore.Semaphore
	codec   workload.Codec
	payload []byte

	workers        int
	iterations     int
	permitsPerTask uint64
	acquireTimeout time.Duration
}

// NewRunner - validates cfg and builds a runner with the configured
// semaphore, codec and payload.
func NewRunner(cfg config.Config) (*Runner, error) {
	if cfg.Semaphore == nil || cfg.Workers == nil || cfg.Payload == nil {
		return nil, errors.New("semaphore, workers and payload sections are required")
	}

	if cfg.Workers.Count <= 0 || cfg.Workers.Iterations <= 0 {
		return nil, errors.New("workers count and iterations must be positive")
	}

	permitsPerTask := cfg.Workers.PermitsPerTask
	if permitsPerTask == 0 {
		permitsPerTask = 1
	}

	if permitsPerTask > cfg.Semaphore.Permits {
		return nil, fmt.Errorf(
			"a task needs %d permits but the semaphore only has %d",
			permitsPerTask, cfg.Semaphore.Permits)
	}

	codec, err := workload.New(workload.CodecType(cfg.Payload.Compression))
	if err != nil {
		return nil, fmt.Errorf("init workload codec failed: %w", err)
	}

	return &Runner{
		sem:            semaphore.New(cfg.Semaphore.Permits),
		codec:          codec,
		payload:        makePayload(cfg.Payload.SizeBytes),
		workers:        cfg.Workers.Count,
		iterations:     cfg.Workers.Iterations,
		permitsPerTask: permitsPerTask,
		acquireTimeout: cfg.Workers.AcquireTimeout,
	}, nil
}

// Run - drives all workers to completion and returns the aggregate stats.
// The run stops early if ctx is cancelled or a workload iteration fails.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	logger.Info("starting bench",
		zap.Int("workers", r.workers),
		zap.Int("iterations", r.iterations),
		zap.Uint64("permits", r.sem.Available()),
		zap.Uint64("permits_per_task", r.permitsPerTask),
		zap.Duration("acquire_timeout", r.acquireTimeout),
		zap.Int("payload_bytes", len(r.payload)),
	)

	var (
		completed     atomic.Int64
		timedOut      atomic.Int64
		concurrent    atomic.Int64
		maxConcurrent atomic.Int64
	)

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.workers; i++ {
		worker := i
		g.Go(func() error {
			for iter := 0; iter < r.iterations; iter++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				if r.acquireTimeout > 0 {
					if !r.sem.AcquireNTimeout(r.permitsPerTask, r.acquireTimeout) {
						timedOut.Add(1)
						continue
					}
				} else if err := r.sem.AcquireN(ctx, r.permitsPerTask); err != nil {
					return err
				}

				cur := concurrent.Add(1)
				for {
					peak := maxConcurrent.Load()
					if cur <= peak || maxConcurrent.CompareAndSwap(peak, cur) {
						break
					}
				}

				err := workload.RoundTrip(r.codec, r.payload)
				concurrent.Add(-1)
				r.sem.AddPermits(r.permitsPerTask)

				if err != nil {
					return fmt.Errorf("worker %d iteration %d failed: %w", worker, iter, err)
				}

				completed.Add(1)
			}

			logger.Debug("worker finished", zap.Int("worker", worker))
			return nil
		})
	}

	err := g.Wait()

	stats := Stats{
		Completed:     completed.Load(),
		TimedOut:      timedOut.Load(),
		MaxConcurrent: maxConcurrent.Load(),
		Elapsed:       time.Since(start),
	}

	logger.Info("bench finished",
		zap.Int64("completed", stats.Completed),
		zap.Int64("timed_out", stats.TimedOut),
		zap.Int64("max_concurrent", stats.MaxConcurrent),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Uint64("available_after", r.sem.Available()),
	)

	return stats, err
}

// Available - permits left in the runner's semaphore, used to verify
// conservation after a run.
func (r *Runner) Available() uint64 {
	return r.sem.Available()
}

func makePayload(size int) []byte {
	if size <= 0 {
		size = 64 * 1024
	}

	// Seeded for reproducible payloads between runs.
	rnd := rand.New(rand.NewSource(42))
	words := []byte("the quick brown fox jumps over the lazy dog ")

	payload := make([]byte, size)
	for i := range payload {
		payload[i] = words[rnd.Intn(len(words))]
	}

	return payload
}
