package clock

import "errors"

// ErrAlreadyFrozen is returned by Freeze when the clock is already frozen.
var ErrAlreadyFrozen = errors.New("clock: already frozen")

// ErrNotFrozen is returned by MoveTo when the clock is in wall mode.
var ErrNotFrozen = errors.New("clock: not frozen")

// ErrRegression is returned by MoveTo when the target instant is strictly
// before the clock's current frozen instant.
var ErrRegression = errors.New("clock: regression")
