// Package warp implements a point-in-time simulation scheduler: the same
// trigger algebra and job registry dispatched either live, against wall
// time, or as a deterministic backtest over simulated time, producing an
// identical call sequence either way (§1).
package warp

import (
	"context"
	"log/slog"
	"time"

	"github.com/jholhewres/warp/pkg/warp/clock"
	"github.com/jholhewres/warp/pkg/warp/job"
	"github.com/jholhewres/warp/pkg/warp/livedriver"
	"github.com/jholhewres/warp/pkg/warp/registry"
	"github.com/jholhewres/warp/pkg/warp/simdriver"
	"github.com/jholhewres/warp/pkg/warp/trigger"
	"github.com/jholhewres/warp/pkg/warp/workerpool"
)

// Scheduler is the façade over the Job Registry, Virtual Clock, and the two
// drivers (§4.7): callers register jobs once and choose how to dispatch
// them, live or backtest, without touching the registry or trigger
// machinery directly.
type Scheduler struct {
	registry *registry.Registry
	clock    *clock.Clock
	zone     *time.Location
	pool     *workerpool.Pool
	logger   *slog.Logger

	live *livedriver.Driver
	sim  *simdriver.Driver
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithZone sets the time zone the Scheduler's clock and default builders
// operate in. Defaults to UTC.
func WithZone(zone *time.Location) Option {
	return func(s *Scheduler) { s.zone = zone }
}

// WithWorkers sets the Live Driver's worker pool size. Defaults to 4.
func WithWorkers(n int) Option {
	return func(s *Scheduler) { s.pool = workerpool.New(n, s.logger) }
}

// WithLogger overrides the Scheduler's slog.Logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// New builds a Scheduler: a fresh Job Registry, a Clock in wall mode, and
// both drivers wired against them. No driver is running until RunBacktest
// or StartLive is called.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		registry: registry.New(),
		zone:     time.UTC,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = workerpool.New(4, s.logger)
	}
	s.clock = clock.New(s.zone)
	s.sim = simdriver.New(s.registry, s.clock, s.logger)
	s.live = livedriver.New(s.registry, s.clock, s.pool, s.logger)
	return s
}

// Clock returns the Scheduler's owned Clock handle. External collaborators
// such as pkg/warp/dataview bind to this to observe the same instant the
// active driver does.
func (s *Scheduler) Clock() *clock.Clock { return s.clock }

// Zone returns the Scheduler's configured time zone.
func (s *Scheduler) Zone() *time.Location { return s.zone }

// Do registers a job: name, the trigger deciding when it fires, the
// function to run, and whether it's fire-once (§5). The assigned job ID is
// returned.
func (s *Scheduler) Do(name string, trig trigger.Trigger, fn job.Func, once bool) (string, error) {
	j := job.New(name, trig, fn, once)
	id, err := s.registry.Add(j)
	if err != nil {
		if err == registry.ErrDuplicateName {
			return "", ErrDuplicateJobName
		}
		return "", err
	}
	s.live.Notify()
	return id, nil
}

// Kickstart registers fn as a job that fires once, immediately, at the
// Scheduler clock's current instant — useful for a "run once on startup"
// job alongside a recurring schedule, without waiting for the recurring
// trigger's first regular fire.
func (s *Scheduler) Kickstart(name string, fn job.Func) (string, error) {
	return s.Do(name, trigger.NewDate(s.clock.Now(), s.zone), fn, true)
}

// Remove unregisters a job by ID.
func (s *Scheduler) Remove(id string) error {
	err := s.registry.Remove(id)
	s.live.Notify()
	return err
}

// Jobs returns a snapshot of every currently registered job.
func (s *Scheduler) Jobs() []*job.Job {
	return s.registry.Snapshot()
}

// RunBacktest dispatches every due job between start and end, strictly
// sequentially over simulated time, via the Deterministic Simulation
// Driver (§4.5). It returns once the window is exhausted, the context is
// cancelled, or a job function returns an error (which aborts the run).
func (s *Scheduler) RunBacktest(ctx context.Context, start, end time.Time) error {
	if err := s.sim.Run(ctx, start, end); err != nil {
		if err == simdriver.ErrAlreadyRunning {
			return ErrBacktestAlreadyRunning
		}
		return err
	}
	return nil
}

// OnBacktestProgress registers a hook invoked after each dispatched batch
// during RunBacktest.
func (s *Scheduler) OnBacktestProgress(fn simdriver.ProgressFunc) {
	s.sim.OnProgress(fn)
}

// StartLive starts the Live Driver's wall-clock dispatch loop in the
// background (§4.6) and returns immediately.
func (s *Scheduler) StartLive(ctx context.Context) error {
	if err := s.live.Start(ctx); err != nil {
		if err == livedriver.ErrAlreadyRunning {
			return ErrLiveAlreadyRunning
		}
		return err
	}
	return nil
}

// StopLive cancels the Live Driver's loop and waits, bounded by ctx, for
// in-flight dispatches to drain.
func (s *Scheduler) StopLive(ctx context.Context) error {
	return s.live.Stop(ctx)
}

// Pause suspends live dispatch without stopping the loop.
func (s *Scheduler) Pause() { s.live.Pause() }

// Resume reverses Pause.
func (s *Scheduler) Resume() { s.live.Resume() }
