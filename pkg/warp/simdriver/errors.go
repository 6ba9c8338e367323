package simdriver

import "errors"

// ErrAlreadyRunning is returned by Run when a backtest is already in
// progress on this driver.
var ErrAlreadyRunning = errors.New("simdriver: already running")
