// Package livedriver implements the Live Driver (§4.6): a wall-clock loop
// that sleeps until the next due job, then dispatches it through a bounded
// Worker Pool. Unlike the Simulation Driver, overlapping fires are allowed
// (no delay waiting on a previous in-flight run) and a job error is caught
// and logged rather than aborting the whole scheduler.
package livedriver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jholhewres/warp/pkg/warp/clock"
	"github.com/jholhewres/warp/pkg/warp/internal/sched"
	"github.com/jholhewres/warp/pkg/warp/job"
	"github.com/jholhewres/warp/pkg/warp/registry"
	"github.com/jholhewres/warp/pkg/warp/workerpool"
)

// idlePoll bounds how long the loop sleeps when the registry currently has
// no pending jobs, so a job added while idle is picked up promptly without
// needing a dedicated wake channel for every caller.
const idlePoll = time.Second

// Driver runs a live scheduler loop against a wall-clock (or otherwise
// unfrozen) Clock, dispatching through a bounded worker pool.
type Driver struct {
	registry *registry.Registry
	clock    *clock.Clock
	pool     *workerpool.Pool
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	paused  bool
	cancel  context.CancelFunc
	done    chan struct{}
	wake    chan struct{}
}

// New builds a Driver dispatching jobs from reg through pool, reading time
// from clk (ordinarily a wall-mode clock; livedriver never freezes it).
func New(reg *registry.Registry, clk *clock.Clock, pool *workerpool.Pool, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		registry: reg,
		clock:    clk,
		pool:     pool,
		logger:   logger,
		wake:     make(chan struct{}, 1),
	}
}

// Notify wakes the loop immediately so a newly added or removed job is
// reflected in the sleep timer without waiting for idlePoll.
func (d *Driver) Notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Start launches the loop in a background goroutine and returns
// immediately. Use Stop to shut it down.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true
	d.mu.Unlock()

	go d.loop(runCtx)
	return nil
}

// Stop cancels the loop and waits, bounded by ctx, for the worker pool to
// drain in-flight dispatches.
func (d *Driver) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return ErrNotRunning
	}
	cancel := d.cancel
	done := d.done
	d.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
	}

	d.pool.Close(ctx)

	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
	return nil
}

// Pause suspends dispatch without tearing down the loop: the timer keeps
// recomputing but no job is submitted to the pool until Resume.
func (d *Driver) Pause() {
	d.mu.Lock()
	d.paused = true
	d.mu.Unlock()
}

// Resume reverses Pause.
func (d *Driver) Resume() {
	d.mu.Lock()
	d.paused = false
	d.mu.Unlock()
	d.Notify()
}

func (d *Driver) isPaused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

func (d *Driver) loop(ctx context.Context) {
	defer close(d.done)

	for {
		jobs := d.registry.Snapshot()
		now := d.clock.Now()
		batch, ok := sched.NextBatch(jobs, now)
		for _, j := range batch.Exhausted {
			d.registry.Remove(j.ID)
		}

		var wait time.Duration
		if !ok {
			wait = idlePoll
		} else {
			wait = batch.At.Sub(d.clock.WallNow())
			if wait < 0 {
				wait = 0
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-d.wake:
			timer.Stop()
			continue
		case <-timer.C:
		}

		if !ok {
			continue
		}
		if d.isPaused() {
			continue
		}
		for _, j := range batch.Jobs {
			d.dispatch(ctx, j, batch.At)
		}
	}
}

// dispatch submits a single job to the worker pool. Overlap with a
// previous still-running instance of the same job is permitted by design
// (§4.6); the job function itself is responsible for any reentrancy
// guards it needs. The cursor is advanced synchronously, before the job
// body is handed to the pool (§4.6.e): the body runs in its own goroutine
// and may not finish before the loop's next scheduling pass, and an
// unadvanced cursor at that point would recompute the same batch instant
// and re-dispatch the same job while the first run is still in flight.
func (d *Driver) dispatch(ctx context.Context, j *job.Job, at time.Time) {
	if !j.CheckCondition(at) {
		j.MarkSkipped(at)
		return
	}
	j.AdvanceCursor(at)

	d.pool.Submit(ctx, func(ctx context.Context) {
		runStart := time.Now()
		runErr := d.runJobFn(j, at)
		duration := time.Since(runStart)
		j.RecordRun(at, duration, runErr)

		if runErr != nil {
			d.logger.Error("live job failed", "job", j.Name, "at", at, "error", runErr)
		} else {
			d.logger.Debug("live job completed", "job", j.Name, "at", at, "duration", duration)
		}

		if j.Once {
			d.registry.Remove(j.ID)
		}
	})
}

func (d *Driver) runJobFn(j *job.Job, at time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return j.Fn(at)
}
