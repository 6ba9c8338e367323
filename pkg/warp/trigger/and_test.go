package trigger

import (
	"errors"
	"testing"
	"time"
)

func TestAndTriggerMergesCronFields(t *testing.T) {
	t.Parallel()
	daily, err := ParseCron("0 0 9 * * *", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	weekdays, err := ParseCron("0 0 * * * mon-fri", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	a, err := NewAnd(daily, weekdays)
	if err != nil {
		t.Fatalf("NewAnd() error = %v", err)
	}
	if a.merged == nil {
		t.Fatal("expected the merge fast path to apply")
	}
	// 2024-03-01 is a Friday.
	cursor := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	next, ok := a.Next(&cursor, cursor)
	if !ok {
		t.Fatal("expected a fire")
	}
	want := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("Next() = %v, want %v", next, want)
	}
}

func TestAndTriggerIncompatibleFieldsError(t *testing.T) {
	t.Parallel()
	at9, err := ParseCron("0 0 9 * * *", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	at10, err := ParseCron("0 0 10 * * *", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	a, err := NewAnd(at9, at10)
	if !errors.Is(err, ErrIncompatibleAnd) {
		t.Fatalf("NewAnd() error = %v, want ErrIncompatibleAnd", err)
	}
	if a != nil {
		t.Fatal("expected no trigger for a contradictory combination: 9 and 10 o'clock can never coincide")
	}
}

func TestAndTriggerZoneMismatch(t *testing.T) {
	t.Parallel()
	utc := NewCron(time.UTC)
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ny := NewCron(loc)
	if _, err := NewAnd(utc, ny); err != ErrZoneMismatch {
		t.Fatalf("NewAnd() error = %v, want ErrZoneMismatch", err)
	}
}

func TestAndTriggerConvergesWithConditional(t *testing.T) {
	t.Parallel()
	everyMinute := NewCron(time.UTC)
	cond := NewConditional(everyMinute, func(at time.Time) bool { return true }, false)
	a, err := NewAnd(everyMinute, cond)
	if err != nil {
		t.Fatalf("NewAnd() error = %v", err)
	}
	if a.merged != nil {
		t.Fatal("a Conditional child should force the iterative fallback")
	}
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	next, ok := a.Next(nil, start)
	if !ok {
		t.Fatal("expected a fire")
	}
	if !next.Equal(start) {
		t.Fatalf("Next() = %v, want %v", next, start)
	}
}
