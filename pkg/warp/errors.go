package warp

import "errors"

// ErrLiveAlreadyRunning is returned by StartLive when the Live Driver is
// already active.
var ErrLiveAlreadyRunning = errors.New("warp: live driver already running")

// ErrBacktestAlreadyRunning is returned by RunBacktest when a backtest is
// already in progress on this Scheduler.
var ErrBacktestAlreadyRunning = errors.New("warp: backtest already running")

// ErrDuplicateJobName is returned by Do when a job with the same name is
// already registered (§5).
var ErrDuplicateJobName = errors.New("warp: duplicate job name")

// ErrUnknownJobKind is returned by LoadJobsFromConfig for a JobSpec.Kind
// the builder layer doesn't recognize.
var ErrUnknownJobKind = errors.New("warp: unknown job kind")

// ErrMissingJobFunc is returned by LoadJobsFromConfig when a JobSpec names
// a job whose function wasn't supplied in the funcs map.
var ErrMissingJobFunc = errors.New("warp: missing job function")
