package trigger

import "time"

// OrTrigger fires whenever any child trigger would fire (§4.2): the next
// instant is the minimum of the children's next instants. Children firing
// at the exact same instant collapse into a single dispatch, since the
// driver dispatches by instant, not by trigger.
type OrTrigger struct {
	children []Trigger
	zone     *time.Location
}

// NewOr builds an OrTrigger from two or more children, all in the same zone.
func NewOr(children ...Trigger) (*OrTrigger, error) {
	if len(children) == 0 {
		return nil, ErrAmbiguousSpec
	}
	zone := children[0].Zone()
	for _, c := range children[1:] {
		if c.Zone().String() != zone.String() {
			return nil, ErrZoneMismatch
		}
	}
	return &OrTrigger{children: children, zone: zone}, nil
}

// Zone implements Trigger.
func (o *OrTrigger) Zone() *time.Location { return o.zone }

// Next implements Trigger.
func (o *OrTrigger) Next(cursor *time.Time, now time.Time) (time.Time, bool) {
	var best time.Time
	found := false
	for _, c := range o.children {
		next, ok := c.Next(cursor, now)
		if !ok {
			continue
		}
		if !found || next.Before(best) {
			best = next
			found = true
		}
	}
	return best, found
}
