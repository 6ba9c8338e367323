package registry

import "errors"

// ErrDuplicateName is returned by Add when a job with the same name is
// already registered (§5: job names are unique within a Scheduler).
var ErrDuplicateName = errors.New("registry: duplicate job name")

// ErrNotFound is returned by Remove when no job has the given ID.
var ErrNotFound = errors.New("registry: job not found")
