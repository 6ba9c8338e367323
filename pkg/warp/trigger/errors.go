package trigger

import "errors"

// ErrIncompatibleAnd is returned when two Cron children of an And combinator
// constrain the same field with differing, non-mergeable expressions.
var ErrIncompatibleAnd = errors.New("trigger: incompatible and")

// ErrZoneMismatch is returned when combinator children (And/Or) or a
// builder are given triggers in different time zones.
var ErrZoneMismatch = errors.New("trigger: zone mismatch")

// ErrAmbiguousSpec is returned when a builder receives both a bundled
// datetime and individual calendar components.
var ErrAmbiguousSpec = errors.New("trigger: ambiguous spec")

// ErrBadFieldExpr is returned when a cron field expression cannot be parsed.
var ErrBadFieldExpr = errors.New("trigger: bad field expression")
