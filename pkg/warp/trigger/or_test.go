package trigger

import (
	"testing"
	"time"
)

func TestOrTriggerPicksEarliestChild(t *testing.T) {
	t.Parallel()
	morning, err := ParseCron("0 0 9 * * *", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	evening, err := ParseCron("0 0 18 * * *", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	o, err := NewOr(morning, evening)
	if err != nil {
		t.Fatalf("NewOr() error = %v", err)
	}
	cursor := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	next, ok := o.Next(&cursor, cursor)
	if !ok {
		t.Fatal("expected a fire")
	}
	want := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("Next() = %v, want %v", next, want)
	}
}

func TestOrTriggerOneChildExhausted(t *testing.T) {
	t.Parallel()
	once := NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	daily, err := ParseCron("0 0 9 * * *", time.UTC)
	if err != nil {
		t.Fatalf("ParseCron() error = %v", err)
	}
	o, err := NewOr(once, daily)
	if err != nil {
		t.Fatalf("NewOr() error = %v", err)
	}
	cursor := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	next, ok := o.Next(&cursor, cursor)
	if !ok {
		t.Fatal("expected a fire from the still-live daily child")
	}
	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("Next() = %v, want %v", next, want)
	}
}

func TestOrTriggerZoneMismatch(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	a := NewCron(time.UTC)
	b := NewCron(loc)
	if _, err := NewOr(a, b); err != ErrZoneMismatch {
		t.Fatalf("NewOr() error = %v, want ErrZoneMismatch", err)
	}
}
