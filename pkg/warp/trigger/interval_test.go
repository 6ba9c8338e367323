package trigger

import (
	"testing"
	"time"
)

func TestIntervalTriggerFixedDuration(t *testing.T) {
	t.Parallel()
	anchor := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	iv := NewInterval(0, 0, 0, 0, 0, 5, 0, anchor, time.UTC)
	cursor := anchor
	next, ok := iv.Next(&cursor, cursor)
	if !ok {
		t.Fatal("expected a fire")
	}
	want := anchor.Add(5 * time.Minute)
	if !next.Equal(want) {
		t.Fatalf("Next() = %v, want %v", next, want)
	}
}

func TestIntervalTriggerFirstFireIsAnchor(t *testing.T) {
	t.Parallel()
	anchor := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	iv := NewInterval(0, 0, 0, 1, 0, 0, 0, anchor, time.UTC)
	before := anchor.Add(-time.Hour)
	next, ok := iv.Next(nil, before)
	if !ok {
		t.Fatal("expected a fire")
	}
	if !next.Equal(anchor) {
		t.Fatalf("Next() = %v, want anchor %v", next, anchor)
	}
}

func TestIntervalTriggerCalendarMonths(t *testing.T) {
	t.Parallel()
	anchor := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	iv := NewInterval(0, 1, 0, 0, 0, 0, 0, anchor, time.UTC)
	cursor := anchor
	next, ok := iv.Next(&cursor, cursor)
	if !ok {
		t.Fatal("expected a fire")
	}
	// AddDate(0,1,0) on Jan 31 rolls into March 2 (Feb has no 31st).
	want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("Next() = %v, want %v", next, want)
	}
}

func TestIntervalTriggerCronFieldsHourStep(t *testing.T) {
	t.Parallel()
	anchor := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	iv := NewInterval(0, 0, 0, 0, 2, 0, 0, anchor, time.UTC)
	cf := iv.cronFields()
	if cf == nil {
		t.Fatal("expected an hour-aligned interval to desugar to cron fields")
	}
	if !cf.Hour.Match(0) || !cf.Hour.Match(2) || cf.Hour.Match(1) {
		t.Fatalf("desugared hour field wrong: %v", cf.Hour)
	}
}

func TestIntervalTriggerCronFieldsUnrepresentable(t *testing.T) {
	t.Parallel()
	anchor := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	iv := NewInterval(0, 0, 1, 0, 0, 0, 0, anchor, time.UTC)
	if cf := iv.cronFields(); cf != nil {
		t.Fatal("a calendar-week interval should not desugar to cron fields")
	}
}
