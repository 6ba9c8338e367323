package warp

import (
	"fmt"
	"time"

	"github.com/jholhewres/warp/pkg/warp/trigger"
)

// FieldRange constrains a single cron field to an inclusive [Lo, Hi] range,
// the argument shape BetweenFields takes per field (§4.2
// between({field:(lo,hi)})).
type FieldRange struct{ Lo, Hi int }

// cronFieldOrder lists the calendar/clock fields from coarsest to finest.
// BetweenFields and OnCalendar both default every field finer than the
// finest one the caller named to its minimum value rather than wildcard:
// specifying only "hour" means "at minute 0, second 0 of that hour," the
// way an ordinary cron-building helper treats an omitted finer field,
// rather than "every second of that hour." dow and week sit outside this
// coarse-to-fine axis and are left wildcard unless named explicitly.
var cronFieldOrder = []string{"year", "month", "day", "hour", "minute", "second"}

type fieldBound struct {
	min, max int
	set      func(c *trigger.CronTrigger, f trigger.FieldExpr)
}

var cronFieldBounds = map[string]fieldBound{
	"year":   {0, 9999, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Year = f }},
	"month":  {1, 12, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Month = f }},
	"day":    {1, 31, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Day = f }},
	"hour":   {0, 23, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Hour = f }},
	"minute": {0, 59, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Minute = f }},
	"second": {0, 59, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Second = f }},
	"dow":    {0, 6, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.DayOfWeek = f }},
	"week":   {1, 53, func(c *trigger.CronTrigger, f trigger.FieldExpr) { c.Week = f }},
}

// At builds a trigger firing exactly once, at a fixed instant (§4.2
// `at(...)`).
func At(at time.Time, zone *time.Location) trigger.Trigger {
	return trigger.NewDate(at, zone)
}

// Cron builds a trigger from a 6-field "second minute hour day month
// day_of_week" expression (§6.2), with day-of-week in Monday=0..Sunday=6
// and mon..sun aliases accepted.
func Cron(expr string, zone *time.Location) (trigger.Trigger, error) {
	return trigger.ParseCron(expr, zone)
}

// On builds a trigger from a shorthand descriptor (@yearly, @monthly,
// @weekly, @daily, @hourly) or an "@every <duration>" expression.
func On(descriptor string, zone *time.Location) (trigger.Trigger, error) {
	return trigger.ParseDescriptor(descriptor, zone)
}

// Every builds a periodic trigger anchored at 'anchor' (§4.2
// `every(...)`). An interval of exactly one clock unit (hours, minutes or
// seconds) whose anchor sits on that unit's boundary fires on the unit's
// own grid, e.g. every 15 minutes at :00/:15/:30/:45. Any other interval
// steps forward from the anchor: calendar units (years, months, weeks,
// days) use calendar arithmetic and clock units use a fixed duration.
func Every(years, months, weeks, days, hours, minutes, seconds int, anchor time.Time, zone *time.Location) trigger.Trigger {
	return trigger.NewInterval(years, months, weeks, days, hours, minutes, seconds, anchor, zone)
}

// Between bounds a Cron trigger's overall validity window to [from, to]
// (§4.2 `between(dates:(a,b))`). It only accepts triggers that expose a
// CronTrigger, since only Cron's carry-forward search honors ValidFrom/
// ValidTo; passing any other trigger kind returns ErrAmbiguousSpec.
func Between(t trigger.Trigger, from, to time.Time) (trigger.Trigger, error) {
	c, ok := t.(*trigger.CronTrigger)
	if !ok {
		return nil, trigger.ErrAmbiguousSpec
	}
	bounded := *c
	bounded.ValidFrom = &from
	bounded.ValidTo = &to
	return &bounded, nil
}

// BetweenFields builds a Cron trigger constraining one or more fields to
// inclusive ranges (§4.2 between({field:(lo,hi)})), keyed by field name:
// "year", "month", "day", "hour", "minute", "second", "dow", or "week". Any
// field finer than the finest one named defaults to its minimum value
// instead of wildcard, so BetweenFields({"hour": {9, 17}}, zone) fires once
// an hour across 9:00-17:00 rather than every second in it.
func BetweenFields(fields map[string]FieldRange, zone *time.Location) (*trigger.CronTrigger, error) {
	c := trigger.NewCron(zone)

	finest := -1
	for i, name := range cronFieldOrder {
		if _, ok := fields[name]; ok {
			finest = i
		}
	}
	for i, name := range cronFieldOrder {
		b := cronFieldBounds[name]
		if r, ok := fields[name]; ok {
			if r.Lo < b.min || r.Hi > b.max || r.Lo > r.Hi {
				return nil, fmt.Errorf("%w: %s range %d-%d out of [%d,%d]", trigger.ErrBadFieldExpr, name, r.Lo, r.Hi, b.min, b.max)
			}
			b.set(c, trigger.Range(r.Lo, r.Hi, b.min, b.max))
			continue
		}
		if i > finest {
			b.set(c, trigger.DefaultMin(b.min, b.max))
		}
	}
	for _, name := range []string{"dow", "week"} {
		r, ok := fields[name]
		if !ok {
			continue
		}
		b := cronFieldBounds[name]
		if r.Lo < b.min || r.Hi > b.max || r.Lo > r.Hi {
			return nil, fmt.Errorf("%w: %s range %d-%d out of [%d,%d]", trigger.ErrBadFieldExpr, name, r.Lo, r.Hi, b.min, b.max)
		}
		b.set(c, trigger.Range(r.Lo, r.Hi, b.min, b.max))
	}
	return c, nil
}

// OnCalendar builds a Cron trigger firing at instants matching the given
// calendar fields exactly (§4.2 on({year,month,…})), keyed the same way as
// BetweenFields. As with BetweenFields, fields finer than the finest one
// named default to their minimum value rather than wildcard.
func OnCalendar(fields map[string]int, zone *time.Location) (*trigger.CronTrigger, error) {
	c := trigger.NewCron(zone)

	finest := -1
	for i, name := range cronFieldOrder {
		if _, ok := fields[name]; ok {
			finest = i
		}
	}
	for i, name := range cronFieldOrder {
		b := cronFieldBounds[name]
		if v, ok := fields[name]; ok {
			if v < b.min || v > b.max {
				return nil, fmt.Errorf("%w: %s value %d out of [%d,%d]", trigger.ErrBadFieldExpr, name, v, b.min, b.max)
			}
			b.set(c, trigger.Literal(v, b.min, b.max))
			continue
		}
		if i > finest {
			b.set(c, trigger.DefaultMin(b.min, b.max))
		}
	}
	for _, name := range []string{"dow", "week"} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		b := cronFieldBounds[name]
		if v < b.min || v > b.max {
			return nil, fmt.Errorf("%w: %s value %d out of [%d,%d]", trigger.ErrBadFieldExpr, name, v, b.min, b.max)
		}
		b.set(c, trigger.Literal(v, b.min, b.max))
	}
	return c, nil
}

// After builds a trigger firing once, delta after from (§4.2 `after(...)`).
func After(from time.Time, delta time.Duration, zone *time.Location) trigger.Trigger {
	return trigger.NewDate(from.Add(delta), zone)
}

// When gates t behind a predicate evaluated at dispatch time, never inside
// the trigger's own Next computation (§4.2 `when(...)`). once mirrors the
// `once` flag: after its first accepted fire, the trigger is permanently
// exhausted.
func When(t trigger.Trigger, predicate trigger.Predicate, once bool) trigger.Trigger {
	return trigger.NewConditional(t, predicate, once)
}

// And combines triggers so the result fires only at instants where every
// child would fire (§4.2).
func And(triggers ...trigger.Trigger) (trigger.Trigger, error) {
	return trigger.NewAnd(triggers...)
}

// Or combines triggers so the result fires whenever any child would fire
// (§4.2).
func Or(triggers ...trigger.Trigger) (trigger.Trigger, error) {
	return trigger.NewOr(triggers...)
}
