// Package simdriver implements the Deterministic Simulation Driver (§4.5):
// an event-driven backtest loop that jumps a frozen Clock directly to each
// due instant and dispatches jobs strictly sequentially on the calling
// goroutine, so a backtest run produces the exact same call sequence every
// time it is replayed. Dispatch carries the same panic-recovery and
// per-job bookkeeping guards as the Live Driver, adapted to single-threaded,
// non-real-time dispatch.
package simdriver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jholhewres/warp/pkg/warp/clock"
	"github.com/jholhewres/warp/pkg/warp/internal/sched"
	"github.com/jholhewres/warp/pkg/warp/job"
	"github.com/jholhewres/warp/pkg/warp/registry"
)

// ProgressFunc is invoked once per dispatched batch, after every job in it
// has run, reporting the simulated instant just processed and how many
// batches remain unknown (backtests don't know total batch count ahead of
// time, so only the running count is reported).
type ProgressFunc func(at time.Time, batchesRun int)

// Driver runs a backtest over a fixed window [start, end], advancing a
// Clock it freezes and owns for the run's duration.
type Driver struct {
	registry *registry.Registry
	clock    *clock.Clock
	logger   *slog.Logger

	onStart    func(ctx context.Context)
	onStop     func(ctx context.Context, err error)
	onProgress ProgressFunc

	running bool
}

// New builds a Driver dispatching jobs from reg, using clk as its owned
// clock handle.
func New(reg *registry.Registry, clk *clock.Clock, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{registry: reg, clock: clk, logger: logger}
}

// OnStart registers a hook called once, after the clock is frozen at start
// and before the first batch is dispatched.
func (d *Driver) OnStart(fn func(ctx context.Context)) { d.onStart = fn }

// OnStop registers a hook called once the run loop exits, whether it ran to
// completion, was cancelled, or aborted on a job error.
func (d *Driver) OnStop(fn func(ctx context.Context, err error)) { d.onStop = fn }

// OnProgress registers a hook called after each dispatched batch.
func (d *Driver) OnProgress(fn ProgressFunc) { d.onProgress = fn }

// Run executes every due job between start and end (inclusive), strictly
// sequentially, jumping the clock directly to each due instant (§4.5). A
// job whose function returns a non-nil error aborts the entire run: Run
// returns that error wrapped with the job's name, matching the simulation
// driver's abort-and-reraise policy (as opposed to the Live Driver, which
// logs and continues).
func (d *Driver) Run(ctx context.Context, start, end time.Time) (err error) {
	if d.running {
		return ErrAlreadyRunning
	}
	d.running = true
	defer func() { d.running = false }()

	if err := d.clock.Freeze(start); err != nil {
		return fmt.Errorf("simdriver: freeze clock: %w", err)
	}
	defer d.clock.Thaw()

	if d.onStart != nil {
		d.onStart(ctx)
	}
	defer func() {
		if d.onStop != nil {
			d.onStop(ctx, err)
		}
	}()

	batchesRun := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		jobs := d.registry.Snapshot()
		batch, ok := sched.NextBatch(jobs, d.clock.Now())
		for _, j := range batch.Exhausted {
			d.registry.Remove(j.ID)
		}
		if !ok || batch.At.After(end) {
			return nil
		}

		if err := d.clock.MoveTo(batch.At); err != nil {
			return fmt.Errorf("simdriver: advance clock: %w", err)
		}

		for _, j := range batch.Jobs {
			if runErr := d.dispatch(j, batch.At); runErr != nil {
				return runErr
			}
		}

		batchesRun++
		if d.onProgress != nil {
			d.onProgress(batch.At, batchesRun)
		}
	}
}

// dispatch runs a single job at 'at', honoring a conditional trigger's
// predicate (evaluated only now, at dispatch time — never inside Next) and
// removing a once job from the registry after it has run.
func (d *Driver) dispatch(j *job.Job, at time.Time) error {
	if !j.CheckCondition(at) {
		j.MarkSkipped(at)
		return nil
	}

	runStart := time.Now()
	runErr := d.runJobFn(j, at)
	duration := time.Since(runStart)
	j.MarkDispatched(at, duration, runErr)

	if runErr != nil {
		d.logger.Error("backtest job failed, aborting run", "job", j.Name, "at", at, "error", runErr)
		return fmt.Errorf("job %q at %s: %w", j.Name, at.Format(time.RFC3339), runErr)
	}

	if j.Once {
		d.registry.Remove(j.ID)
	}
	return nil
}

// runJobFn isolates a panicking job body so the driver can still report a
// clean error instead of crashing the whole run.
func (d *Driver) runJobFn(j *job.Job, at time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return j.Fn(at)
}
