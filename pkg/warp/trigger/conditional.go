package trigger

import "time"

// Predicate is evaluated at dispatch time, not at schedule time (§4.2): the
// driver calls it only once it has already decided to fire the wrapped
// trigger's next instant, so the predicate sees the same "now" the job body
// would. It must be safe to call from whichever goroutine the driver
// dispatches on.
type Predicate func(at time.Time) bool

// ConditionalTrigger wraps an inner trigger and gates each fire behind a
// Predicate (§4.2, the `when(...)` builder). The schedule itself — the set
// of candidate instants — is entirely determined by the inner trigger;
// Next never calls the predicate, so a Conditional trigger still composes
// correctly inside And/Or's field algebra by simply not being
// cron-representable (it has no cronFields) and falling back to iterative
// convergence when combined.
type ConditionalTrigger struct {
	inner     Trigger
	predicate Predicate
	once      bool
	fired     bool
}

// NewConditional wraps inner with predicate. If once is true, the trigger
// self-removes (Next reports Never) after its first predicate-accepted fire;
// the driver is responsible for calling MarkFired once it has actually
// dispatched, since Next itself never evaluates the predicate.
func NewConditional(inner Trigger, predicate Predicate, once bool) *ConditionalTrigger {
	return &ConditionalTrigger{inner: inner, predicate: predicate, once: once}
}

// Zone implements Trigger.
func (c *ConditionalTrigger) Zone() *time.Location { return c.inner.Zone() }

// Next implements Trigger: it defers entirely to the inner trigger's
// schedule, except that a once trigger which has already fired is
// permanently exhausted.
func (c *ConditionalTrigger) Next(cursor *time.Time, now time.Time) (time.Time, bool) {
	if c.once && c.fired {
		return time.Time{}, false
	}
	return c.inner.Next(cursor, now)
}

// Check evaluates the predicate at the candidate instant. The driver calls
// this after Next proposes an instant and before dispatching the job body.
func (c *ConditionalTrigger) Check(at time.Time) bool {
	if c.predicate == nil {
		return true
	}
	return c.predicate(at)
}

// MarkFired records that this trigger's candidate instant was dispatched.
// For a once trigger this permanently exhausts the schedule; for a
// recurring trigger it is a no-op recorded for parity with the driver's
// call pattern.
func (c *ConditionalTrigger) MarkFired() {
	if c.once {
		c.fired = true
	}
}
