// Package job defines the scheduled unit of work (§5): a trigger paired
// with a function and its lifecycle bookkeeping, independent of which
// driver dispatches it.
package job

import (
	"sync"
	"time"

	"github.com/jholhewres/warp/pkg/warp/trigger"
)

// Func is the user-supplied body of a job. The instant the driver decided
// to fire at is passed in so a job can log or branch on its own schedule
// time without calling back into the clock.
type Func func(at time.Time) error

// Job pairs a Trigger with the function it guards, plus the state a driver
// needs to dispatch it correctly: the resume cursor, whether it is a
// fire-once job, and run bookkeeping used for logging and introspection.
//
// A Job's mutable fields (Cursor, RunCount, LastRunAt, LastError,
// LastRunDuration) are changed through Job's methods, which serialize on the
// Job's own mutex.
type Job struct {
	ID   string
	Name string

	// Seq is the job's insertion order within its registry, assigned by
	// Registry.Add. Drivers use it to break same-instant dispatch ties in
	// reverse-insertion order (§4.5): the most recently added job of a tied
	// batch dispatches first.
	Seq int

	Trigger trigger.Trigger
	Fn      Func

	// Once marks a job as fire-once: once it has been dispatched, the
	// registry removes it instead of rescheduling (§5, the once(...) flag).
	Once bool

	// Cursor is the last instant this job was dispatched at, or nil if it
	// has never fired. Passed back into Trigger.Next to compute the next
	// candidate instant.
	Cursor *time.Time

	CreatedAt time.Time
	LastRunAt *time.Time
	LastError string

	RunCount        int
	LastRunDuration time.Duration

	// conditional is set when Trigger wraps a *trigger.ConditionalTrigger,
	// giving drivers a typed handle to call Check/MarkFired without a type
	// assertion scattered through driver code.
	conditional *trigger.ConditionalTrigger

	mu sync.Mutex
}

// New builds a Job. id is assigned by the Registry on Add; callers
// constructing a Job directly (e.g. in tests) may leave it empty.
func New(name string, trig trigger.Trigger, fn Func, once bool) *Job {
	j := &Job{
		Name:      name,
		Trigger:   trig,
		Fn:        fn,
		Once:      once,
		CreatedAt: time.Now(),
	}
	if cond, ok := trig.(*trigger.ConditionalTrigger); ok {
		j.conditional = cond
	}
	return j
}

// NextFire computes the job's next candidate instant given now, without
// mutating the job. The driver is expected to call MarkDispatched once it
// has actually run the job at that instant.
func (j *Job) NextFire(now time.Time) (time.Time, bool) {
	return j.Trigger.Next(j.Cursor, now)
}

// CheckCondition evaluates the job's predicate (if its trigger is
// conditional) at the candidate instant. Non-conditional triggers always
// pass.
func (j *Job) CheckCondition(at time.Time) bool {
	if j.conditional == nil {
		return true
	}
	return j.conditional.Check(at)
}

// MarkDispatched records that the job actually ran at 'at': advances the
// resume cursor, bumps RunCount, and — for a once-flagged conditional
// trigger — marks it exhausted. Only call this once the job body has
// actually executed; a candidate instant whose predicate rejected the fire
// must go through MarkSkipped instead, or a once conditional would be
// marked exhausted by its first false predicate check rather than its
// first true one. Drivers that submit the job body to run asynchronously
// (the Live Driver's worker pool) should use AdvanceCursor/RecordRun
// instead, so the cursor advances before submission rather than after
// completion.
func (j *Job) MarkDispatched(at time.Time, duration time.Duration, runErr error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.advanceCursorLocked(at)
	j.recordRunLocked(at, duration, runErr)
}

// MarkSkipped advances the resume cursor past a candidate instant whose
// conditional predicate rejected the fire, without recording a run or
// touching the conditional's once-exhaustion state. Without this, Next
// would keep proposing the same rejected instant forever.
func (j *Job) MarkSkipped(at time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.advanceCursorLocked(at)
}

// AdvanceCursor advances the resume cursor synchronously, before a job
// body is handed off to run asynchronously. A driver that instead waited
// until the body finished to advance the cursor would recompute the same
// batch instant on its next scheduling pass and re-dispatch the same job
// while the first run was still in flight.
func (j *Job) AdvanceCursor(at time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.advanceCursorLocked(at)
}

// RecordRun records the outcome of a job body that has already run,
// without touching Cursor — the caller must have already advanced it via
// AdvanceCursor before handing the body off to run.
func (j *Job) RecordRun(at time.Time, duration time.Duration, runErr error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recordRunLocked(at, duration, runErr)
}

func (j *Job) advanceCursorLocked(at time.Time) {
	cursor := at
	j.Cursor = &cursor
}

func (j *Job) recordRunLocked(at time.Time, duration time.Duration, runErr error) {
	cursor := at
	j.LastRunAt = &cursor
	j.RunCount++
	j.LastRunDuration = duration
	if runErr != nil {
		j.LastError = runErr.Error()
	} else {
		j.LastError = ""
	}
	if j.conditional != nil {
		j.conditional.MarkFired()
	}
}

// Exhausted reports whether this job's trigger can no longer fire from the
// current cursor.
func (j *Job) Exhausted(now time.Time) bool {
	_, ok := j.Trigger.Next(j.Cursor, now)
	return !ok
}
