package trigger

import (
	"fmt"
	"strings"
	"time"
)

// yearSearchHorizon bounds how far into the future Next will search before
// concluding a Cron trigger never fires again. Matches the horizon common
// cron libraries use to avoid unbounded scans over sparse field combinations.
const yearSearchHorizon = 8

// CronTrigger fires at every calendar instant matching all of its fields,
// strictly after the cursor. Year and Week are optional (§3); when left as
// Wildcard they impose no constraint.
type CronTrigger struct {
	Second, Minute, Hour FieldExpr
	Day, Month, DayOfWeek FieldExpr
	Year, Week            FieldExpr
	zone                  *time.Location

	// ValidFrom/ValidTo optionally bound overall trigger validity, as set by
	// the between(dates:(a,b)) builder option.
	ValidFrom, ValidTo *time.Time
}

// NewCron builds a CronTrigger with every field defaulting to wildcard.
func NewCron(zone *time.Location) *CronTrigger {
	return &CronTrigger{
		Second:    Wildcard(0, 59),
		Minute:    Wildcard(0, 59),
		Hour:      Wildcard(0, 23),
		Day:       Wildcard(1, 31),
		Month:     Wildcard(1, 12),
		DayOfWeek: Wildcard(0, 6),
		Year:      Wildcard(0, 9999),
		Week:      Wildcard(1, 53),
		zone:      zone,
	}
}

// Zone implements Trigger.
func (c *CronTrigger) Zone() *time.Location { return c.zone }

// cronFields lets And detect a Cron-representable trigger for field merging.
func (c *CronTrigger) cronFields() *CronTrigger { return c }

func isoDow(w time.Weekday) int { return (int(w) + 6) % 7 }

func (c *CronTrigger) dayMatches(t time.Time) bool {
	if !c.Day.Match(t.Day()) {
		return false
	}
	if !c.DayOfWeek.Match(isoDow(t.Weekday())) {
		return false
	}
	if !c.Week.IsWildcard() {
		_, wk := t.ISOWeek()
		if !c.Week.Match(wk) {
			return false
		}
	}
	return true
}

func firstOfNextMonth(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)
}

func startOfNextDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
}

func startOfNextHour(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, loc)
}

func startOfNextMinute(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()+1, 0, 0, loc)
}

// Next implements Trigger.
func (c *CronTrigger) Next(cursor *time.Time, now time.Time) (time.Time, bool) {
	var t time.Time
	if cursor != nil {
		t = cursor.In(c.zone).Add(time.Second)
	} else {
		t = now.In(c.zone)
	}
	t = t.Truncate(time.Second)

	if c.ValidFrom != nil && t.Before(*c.ValidFrom) {
		t = c.ValidFrom.In(c.zone)
	}

	horizon := t.Year() + yearSearchHorizon
	for {
		if t.Year() > horizon {
			return time.Time{}, false
		}
		if c.ValidTo != nil && t.After(*c.ValidTo) {
			return time.Time{}, false
		}
		if !c.Year.Match(t.Year()) {
			t = time.Date(t.Year()+1, 1, 1, 0, 0, 0, 0, c.zone)
			continue
		}
		if !c.Month.Match(int(t.Month())) {
			t = firstOfNextMonth(t, c.zone)
			continue
		}
		if !c.dayMatches(t) {
			t = startOfNextDay(t, c.zone)
			continue
		}
		if !c.Hour.Match(t.Hour()) {
			t = startOfNextHour(t, c.zone)
			continue
		}
		if !c.Minute.Match(t.Minute()) {
			t = startOfNextMinute(t, c.zone)
			continue
		}
		if !c.Second.Match(t.Second()) {
			t = t.Add(time.Second)
			continue
		}
		return t, true
	}
}

// ParseCron compiles the standard 6-field expression described in §6.2:
// "second minute hour day month day_of_week", with day_of_week accepting
// mon..sun aliases and the usual *, a-b, */n, a-b/n extensions.
func ParseCron(expr string, zone *time.Location) (*CronTrigger, error) {
	fields := strings.Fields(expr)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d in %q", ErrBadFieldExpr, len(fields), expr)
	}
	c := NewCron(zone)
	var err error
	if c.Second, err = ParseField(fields[0], 0, 59, false); err != nil {
		return nil, err
	}
	if c.Minute, err = ParseField(fields[1], 0, 59, false); err != nil {
		return nil, err
	}
	if c.Hour, err = ParseField(fields[2], 0, 23, false); err != nil {
		return nil, err
	}
	if c.Day, err = ParseField(fields[3], 1, 31, false); err != nil {
		return nil, err
	}
	if c.Month, err = ParseField(fields[4], 1, 12, false); err != nil {
		return nil, err
	}
	if c.DayOfWeek, err = ParseField(fields[5], 0, 6, true); err != nil {
		return nil, err
	}
	return c, nil
}
