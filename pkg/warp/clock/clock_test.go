package clock

import (
	"testing"
	"time"
)

func TestFreezeMoveToThaw(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := c.Freeze(start); err != nil {
		t.Fatalf("Freeze() error = %v", err)
	}
	if !c.Frozen() {
		t.Fatal("expected clock to be frozen")
	}
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	if err := c.Freeze(start); err != ErrAlreadyFrozen {
		t.Fatalf("Freeze() on frozen clock = %v, want ErrAlreadyFrozen", err)
	}

	next := start.Add(time.Hour)
	if err := c.MoveTo(next); err != nil {
		t.Fatalf("MoveTo() error = %v", err)
	}
	if got := c.Now(); !got.Equal(next) {
		t.Fatalf("Now() after MoveTo = %v, want %v", got, next)
	}

	if err := c.MoveTo(start); err != ErrRegression {
		t.Fatalf("MoveTo() backwards = %v, want ErrRegression", err)
	}

	c.Thaw()
	if c.Frozen() {
		t.Fatal("expected clock to be thawed")
	}
}

func TestMoveToRequiresFrozen(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	if err := c.MoveTo(time.Now()); err != ErrNotFrozen {
		t.Fatalf("MoveTo() on wall clock = %v, want ErrNotFrozen", err)
	}
}

func TestWallNowIgnoresFreeze(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	frozenAt := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := c.Freeze(frozenAt); err != nil {
		t.Fatalf("Freeze() error = %v", err)
	}

	wall := c.WallNow()
	if wall.Year() == 2000 {
		t.Fatal("WallNow() should not observe the frozen instant")
	}
}

func TestDefaultClock(t *testing.T) {
	c := New(time.UTC)
	frozenAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := c.Freeze(frozenAt); err != nil {
		t.Fatalf("Freeze() error = %v", err)
	}

	prev := Default()
	defer SetDefault(prev)

	SetDefault(c)
	if got := Now(); !got.Equal(frozenAt) {
		t.Fatalf("Now() = %v, want %v", got, frozenAt)
	}
}
