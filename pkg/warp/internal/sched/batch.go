// Package sched holds the dispatch-batch computation shared by the
// Simulation Driver and Live Driver, so both drivers agree on which jobs
// fire together and in what order (§4.5, §4.6).
package sched

import (
	"sort"
	"time"

	"github.com/jholhewres/warp/pkg/warp/job"
)

// Batch is the set of jobs due to fire at the same instant, ordered for
// dispatch: reverse insertion order, so the most recently registered job in
// a tied batch dispatches first (§4.5).
type Batch struct {
	At   time.Time
	Jobs []*job.Job

	// Exhausted lists every job scanned whose trigger can never fire again
	// from its current cursor (NextFire returned ok=false). The caller
	// removes these from the Registry (§4.5.c: "if fire is Never, remove
	// the Job") regardless of whether a batch was found.
	Exhausted []*job.Job
}

// NextBatch scans jobs for the earliest next-fire instant and returns every
// job due at that instant, in reverse-insertion-order. ok is false when no
// job has a future fire (the registry is empty or every trigger is
// exhausted); Exhausted is populated either way.
func NextBatch(jobs []*job.Job, now time.Time) (Batch, bool) {
	var earliest time.Time
	found := false
	candidates := make(map[*job.Job]time.Time, len(jobs))
	var exhausted []*job.Job

	for _, j := range jobs {
		at, ok := j.NextFire(now)
		if !ok {
			exhausted = append(exhausted, j)
			continue
		}
		candidates[j] = at
		if !found || at.Before(earliest) {
			earliest = at
			found = true
		}
	}
	if !found {
		return Batch{Exhausted: exhausted}, false
	}

	due := make([]*job.Job, 0, len(candidates))
	for j, at := range candidates {
		if at.Equal(earliest) {
			due = append(due, j)
		}
	}
	sort.Slice(due, func(i, k int) bool { return due[i].Seq > due[k].Seq })

	return Batch{At: earliest, Jobs: due, Exhausted: exhausted}, true
}
