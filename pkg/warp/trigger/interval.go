package trigger

import "time"

// IntervalTrigger fires periodically (§4.2, the `every(...)` builder). An
// interval of exactly one clock unit whose anchor sits on that unit's
// boundary fires on the unit's own grid (see Next). Any other interval steps
// forward from its anchor instant: calendar units (years, months, weeks,
// days) are applied with AddDate so month-length irregularities behave the
// way a human reading "every month" expects, and clock units (hours,
// minutes, seconds) are applied as a fixed duration.
type IntervalTrigger struct {
	Years, Months, Weeks, Days int
	Hours, Minutes, Seconds    int
	anchor                     time.Time
	zone                       *time.Location
}

// NewInterval builds an IntervalTrigger anchored at anchor. The anchor is
// itself a fire only on the anchor-stepping path and only while now is
// before it; see Next.
func NewInterval(years, months, weeks, days, hours, minutes, seconds int, anchor time.Time, zone *time.Location) *IntervalTrigger {
	if zone == nil {
		zone = anchor.Location()
	}
	return &IntervalTrigger{
		Years: years, Months: months, Weeks: weeks, Days: days,
		Hours: hours, Minutes: minutes, Seconds: seconds,
		anchor: anchor.In(zone), zone: zone,
	}
}

// Zone implements Trigger.
func (iv *IntervalTrigger) Zone() *time.Location { return iv.zone }

func (iv *IntervalTrigger) step(t time.Time) time.Time {
	t = t.AddDate(iv.Years, iv.Months, iv.Weeks*7+iv.Days)
	d := time.Duration(iv.Hours)*time.Hour + time.Duration(iv.Minutes)*time.Minute + time.Duration(iv.Seconds)*time.Second
	return t.Add(d)
}

// Next implements Trigger. When the interval reduces to a single stepped
// clock field (§4.2: exactly one of hours/minutes/seconds, no calendar
// units, phase-aligned anchor), it delegates to the equivalent Cron field
// so fires land on the field's own grid (e.g. every(minutes=15) always
// fires at :00/:15/:30/:45) rather than drifting with whatever time the
// anchor happened to be constructed at. Intervals with calendar components
// (years/months/weeks/days) or a non-phase-aligned anchor aren't
// representable this way and fall back to walking forward from the anchor
// one period at a time. On both paths a nil cursor yields the first fire
// strictly after now. IntervalTrigger never expires on its own.
func (iv *IntervalTrigger) Next(cursor *time.Time, now time.Time) (time.Time, bool) {
	if cf := iv.cronFields(); cf != nil {
		if cursor == nil {
			// As on the anchor-stepping path below, a nil cursor yields a
			// fire strictly after now.
			floor := now
			cursor = &floor
		}
		return cf.Next(cursor, now)
	}

	floor := now
	if cursor != nil {
		floor = *cursor
	}
	t := iv.anchor
	for !t.After(floor) {
		next := iv.step(t)
		if !next.After(t) {
			// A zero-length interval would spin forever; treat as a single
			// fire at the anchor to avoid an infinite loop.
			return t, !t.Before(iv.anchor) && cursor == nil
		}
		t = next
	}
	return t, true
}

// cronFields reports whether this interval desugars to a single stepped
// cron field (§4.2): exactly one of Hours/Minutes/Seconds set, no calendar
// components, and the anchor's finer fields already at their zero point.
// And uses this to merge an Interval child with a Cron sibling; when the
// interval isn't reducible this way it returns nil and And falls back to
// iterative convergence.
func (iv *IntervalTrigger) cronFields() *CronTrigger {
	if iv.Years != 0 || iv.Months != 0 || iv.Weeks != 0 || iv.Days != 0 {
		return nil
	}
	c := NewCron(iv.zone)
	switch {
	case iv.Hours > 0 && iv.Minutes == 0 && iv.Seconds == 0:
		if iv.anchor.Minute() != 0 || iv.anchor.Second() != 0 {
			return nil
		}
		c.Hour = Step(iv.Hours, 0, 23)
		c.Minute = Literal(0, 0, 59)
		c.Second = Literal(0, 0, 59)
	case iv.Minutes > 0 && iv.Hours == 0 && iv.Seconds == 0:
		if iv.anchor.Second() != 0 {
			return nil
		}
		c.Minute = Step(iv.Minutes, 0, 59)
		c.Second = Literal(0, 0, 59)
	case iv.Seconds > 0 && iv.Hours == 0 && iv.Minutes == 0:
		c.Second = Step(iv.Seconds, 0, 59)
	default:
		return nil
	}
	return c
}
