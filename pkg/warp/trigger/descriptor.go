package trigger

import (
	"time"

	"github.com/robfig/cron/v3"
)

// DescriptorTrigger wraps a robfig/cron/v3 Schedule produced by the
// shorthand descriptor syntax (@yearly, @monthly, @weekly, @daily, @hourly,
// @every <duration>), using cron.NewParser with the Descriptor ParseOption.
// It is not Cron-representable for And's field-merging fast path —
// robfig's Schedule is opaque — so combinators fall back to iterative
// convergence when one of these is a child.
type DescriptorTrigger struct {
	schedule cron.Schedule
	zone     *time.Location
}

var descriptorParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseDescriptor compiles a shorthand descriptor or @every duration using
// robfig/cron/v3's parser.
func ParseDescriptor(spec string, zone *time.Location) (*DescriptorTrigger, error) {
	sched, err := descriptorParser.Parse(spec)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		zone = time.UTC
	}
	return &DescriptorTrigger{schedule: sched, zone: zone}, nil
}

// Zone implements Trigger.
func (d *DescriptorTrigger) Zone() *time.Location { return d.zone }

// Next implements Trigger by delegating to the wrapped robfig Schedule.
func (d *DescriptorTrigger) Next(cursor *time.Time, now time.Time) (time.Time, bool) {
	from := now
	if cursor != nil {
		from = *cursor
	}
	next := d.schedule.Next(from.In(d.zone))
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}
