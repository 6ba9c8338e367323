package warp

import (
	"context"
	"testing"
	"time"
)

func TestSchedulerRunBacktestDispatchesJobs(t *testing.T) {
	t.Parallel()
	s := New(WithZone(time.UTC))

	var calls []time.Time
	trig, err := Cron("0 0 9 * * *", time.UTC)
	if err != nil {
		t.Fatalf("Cron() error = %v", err)
	}
	if _, err := s.Do("daily", trig, func(at time.Time) error {
		calls = append(calls, at)
		return nil
	}, false); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	if err := s.RunBacktest(context.Background(), start, end); err != nil {
		t.Fatalf("RunBacktest() error = %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2: %v", len(calls), calls)
	}
}

func TestSchedulerDoDuplicateName(t *testing.T) {
	t.Parallel()
	s := New()
	trig, _ := Cron("0 0 9 * * *", time.UTC)
	if _, err := s.Do("dup", trig, func(time.Time) error { return nil }, false); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if _, err := s.Do("dup", trig, func(time.Time) error { return nil }, false); err != ErrDuplicateJobName {
		t.Fatalf("Do() error = %v, want ErrDuplicateJobName", err)
	}
}

func TestSchedulerKickstartFiresImmediatelyInBacktest(t *testing.T) {
	t.Parallel()
	s := New(WithZone(time.UTC))
	fired := false
	if _, err := s.Kickstart("boot", func(at time.Time) error {
		fired = true
		return nil
	}); err != nil {
		t.Fatalf("Kickstart() error = %v", err)
	}

	now := s.Clock().Now()
	start := now.Add(-2 * time.Second)
	end := now.Add(2 * time.Second)
	if err := s.RunBacktest(context.Background(), start, end); err != nil {
		t.Fatalf("RunBacktest() error = %v", err)
	}
	if !fired {
		t.Fatal("expected the kickstart job to fire")
	}
}

func TestSchedulerStartStopLive(t *testing.T) {
	t.Parallel()
	s := New(WithZone(time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.StartLive(ctx); err != nil {
		t.Fatalf("StartLive() error = %v", err)
	}
	if err := s.StartLive(ctx); err != ErrLiveAlreadyRunning {
		t.Fatalf("StartLive() second call error = %v, want ErrLiveAlreadyRunning", err)
	}
	if err := s.StopLive(context.Background()); err != nil {
		t.Fatalf("StopLive() error = %v", err)
	}
}

func TestOrBuilderComposesCronTriggers(t *testing.T) {
	t.Parallel()
	weekdays, err := Cron("0 0 9 * * mon-fri", time.UTC)
	if err != nil {
		t.Fatalf("Cron() error = %v", err)
	}
	weekends, err := Cron("0 0 9 * * sat-sun", time.UTC)
	if err != nil {
		t.Fatalf("Cron() error = %v", err)
	}
	combined, err := Or(weekdays, weekends)
	if err != nil {
		t.Fatalf("Or() error = %v", err)
	}

	cursor := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	next, ok := combined.Next(&cursor, cursor)
	if !ok {
		t.Fatal("expected a fire")
	}
	if next.Hour() != 9 {
		t.Fatalf("Next() = %v, want hour 9", next)
	}
}
