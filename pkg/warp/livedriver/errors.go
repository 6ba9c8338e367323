package livedriver

import "errors"

// ErrAlreadyRunning is returned by Start when the driver's loop is already
// active.
var ErrAlreadyRunning = errors.New("livedriver: already running")

// ErrNotRunning is returned by Stop when the driver's loop isn't active.
var ErrNotRunning = errors.New("livedriver: not running")
