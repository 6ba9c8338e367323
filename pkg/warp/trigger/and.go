package trigger

import "time"

// maxConvergenceIterations bounds the iterative fallback And uses when its
// children aren't both Cron-representable. Each iteration advances the
// slower child at least one step, so this is generous for any sane trigger.
const maxConvergenceIterations = 10000

// AndTrigger fires only at instants where every child trigger would fire
// (§4.2). When both children are Cron-representable (directly or via an
// Interval's desugared form) the fields are merged once, up front, per the
// merge rules in mergeField; when any child is not Cron-representable, Next
// falls back to walking each child forward until their proposed instants
// converge.
type AndTrigger struct {
	children []Trigger
	merged   *CronTrigger // non-nil when the merge fast path applies
	zone     *time.Location
}

// NewAnd builds an AndTrigger from two or more children, all in the same
// zone. It returns ErrZoneMismatch if the children disagree on zone, and
// ErrIncompatibleAnd if every child is Cron-representable but their fields
// cannot be merged.
func NewAnd(children ...Trigger) (*AndTrigger, error) {
	if len(children) == 0 {
		return nil, ErrAmbiguousSpec
	}
	zone := children[0].Zone()
	for _, c := range children[1:] {
		if c.Zone().String() != zone.String() {
			return nil, ErrZoneMismatch
		}
	}
	a := &AndTrigger{children: children, zone: zone}
	merged, ok, err := tryMergeAll(children)
	if err != nil {
		return nil, err
	}
	if ok {
		a.merged = merged
	}
	return a, nil
}

func tryMergeAll(children []Trigger) (*CronTrigger, bool, error) {
	crons := make([]*CronTrigger, len(children))
	for i, child := range children {
		cf, ok := asCronFields(child)
		if !ok {
			return nil, false, nil
		}
		crons[i] = cf
	}
	merged := *crons[0]
	for _, cf := range crons[1:] {
		m, err := mergeCronFields(&merged, cf)
		if err != nil {
			return nil, false, err
		}
		merged = *m
	}
	return &merged, true, nil
}

func mergeCronFields(a, b *CronTrigger) (*CronTrigger, error) {
	out := NewCron(a.zone)
	var err error
	if out.Second, err = mergeField(a.Second, b.Second); err != nil {
		return nil, err
	}
	if out.Minute, err = mergeField(a.Minute, b.Minute); err != nil {
		return nil, err
	}
	if out.Hour, err = mergeField(a.Hour, b.Hour); err != nil {
		return nil, err
	}
	if out.Day, err = mergeField(a.Day, b.Day); err != nil {
		return nil, err
	}
	if out.Month, err = mergeField(a.Month, b.Month); err != nil {
		return nil, err
	}
	if out.DayOfWeek, err = mergeField(a.DayOfWeek, b.DayOfWeek); err != nil {
		return nil, err
	}
	if out.Year, err = mergeField(a.Year, b.Year); err != nil {
		return nil, err
	}
	if out.Week, err = mergeField(a.Week, b.Week); err != nil {
		return nil, err
	}
	out.ValidFrom = laterBound(a.ValidFrom, b.ValidFrom)
	out.ValidTo = earlierBound(a.ValidTo, b.ValidTo)
	return out, nil
}

func laterBound(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.After(*b):
		return a
	default:
		return b
	}
}

func earlierBound(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Before(*b):
		return a
	default:
		return b
	}
}

// Zone implements Trigger.
func (a *AndTrigger) Zone() *time.Location { return a.zone }

// Next implements Trigger.
func (a *AndTrigger) Next(cursor *time.Time, now time.Time) (time.Time, bool) {
	if a.merged != nil {
		return a.merged.Next(cursor, now)
	}
	return a.converge(cursor, now)
}

// converge walks every child forward independently until all of them agree
// on the same candidate instant, re-advancing whichever child proposed the
// earliest (and therefore non-matching) candidate. Bounded by
// maxConvergenceIterations to guarantee termination on triggers that will
// never agree.
func (a *AndTrigger) converge(cursor *time.Time, now time.Time) (time.Time, bool) {
	candidates := make([]time.Time, len(a.children))
	for i, c := range a.children {
		next, ok := c.Next(cursor, now)
		if !ok {
			return time.Time{}, false
		}
		candidates[i] = next
	}
	for iter := 0; iter < maxConvergenceIterations; iter++ {
		allEqual := true
		latest := candidates[0]
		for _, c := range candidates[1:] {
			if c.After(latest) {
				latest = c
			}
		}
		for i, c := range candidates {
			if !c.Equal(latest) {
				allEqual = false
				cur := latest.Add(-time.Second)
				next, ok := a.children[i].Next(&cur, now)
				if !ok {
					return time.Time{}, false
				}
				candidates[i] = next
			}
		}
		if allEqual {
			return latest, true
		}
	}
	return time.Time{}, false
}
