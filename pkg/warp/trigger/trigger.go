// Package trigger implements the trigger algebra (§4.2): the pure functions
// that answer "when does this job next want to run", independent of how it
// is dispatched. Every trigger kind satisfies the same Next contract so the
// Simulation Driver and Live Driver can treat them interchangeably.
package trigger

import "time"

// Trigger answers "what is the next instant strictly after cursor (or at/after
// now, when cursor is nil) at which this trigger wants to fire". A false
// second return means the trigger will never fire again.
//
// Implementations must be pure: calling Next repeatedly with the same
// cursor/now must return the same answer. Triggers must not read wall-clock
// time directly; now is always supplied by the caller (driver or clock), so
// the same trigger produces the same call sequence under both drivers.
type Trigger interface {
	Next(cursor *time.Time, now time.Time) (time.Time, bool)
	Zone() *time.Location
}

// cronFielder is a narrow interface implemented by triggers that can expose
// themselves as a CronTrigger for the purposes of And's field-merging
// algebra (§4.2). CronTrigger implements it directly; IntervalTrigger
// implements it by exposing its desugared form.
type cronFielder interface {
	cronFields() *CronTrigger
}

func asCronFields(t Trigger) (*CronTrigger, bool) {
	cf, ok := t.(cronFielder)
	if !ok {
		return nil, false
	}
	c := cf.cronFields()
	return c, c != nil
}
