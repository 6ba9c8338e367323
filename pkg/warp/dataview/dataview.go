// Package dataview implements the narrow external-collaborator contract
// from §6.4 and the design notes' "no global mutable clock" resolution: a
// date-aware view over some user data source that always reads the current
// simulated (or wall) instant through a Clock, rather than calling
// time.Now() itself, so it observes the same instant a job dispatched at
// that moment would.
package dataview

import (
	"time"

	"github.com/jholhewres/warp/pkg/warp/clock"
)

// FrameLike is the minimal shape a user data source must expose to be
// snapshotted as-of a simulated instant. It deliberately does not assume
// any particular table/dataframe library; adapters wrap concrete types
// (e.g. a slice of records, a column store) to satisfy it.
type FrameLike interface {
	// AsOf returns the subset of the underlying data visible at or before
	// 'at'. Implementations must be pure with respect to 'at': the same
	// instant must always yield the same view.
	AsOf(at time.Time) any
}

// View binds a FrameLike to a Clock, so callers can ask "what does this
// data source look like right now" without caring whether "now" is wall
// time or a frozen backtest instant.
type View struct {
	source FrameLike
	clock  *clock.Clock
}

// New binds source to clk. When clk is nil the process-wide default clock
// (clock.Default()) is used, matching ambient callers that don't hold an
// explicit driver-owned Clock handle.
func New(source FrameLike, clk *clock.Clock) *View {
	if clk == nil {
		clk = clock.Default()
	}
	return &View{source: source, clock: clk}
}

// Snapshot returns the data source's view as of the clock's current
// instant (§6.4).
func (v *View) Snapshot() any {
	return v.source.AsOf(v.clock.Now())
}

// SnapshotAt returns the view as of an explicit instant, bypassing the
// bound clock. Useful for ad-hoc historical queries outside of a running
// driver.
func (v *View) SnapshotAt(at time.Time) any {
	return v.source.AsOf(at)
}
