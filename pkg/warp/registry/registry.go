// Package registry implements the Job Registry (§5): the concurrency-safe
// map of a Scheduler's active jobs, keyed by id with a name-uniqueness
// index, behind a single sync.RWMutex.
package registry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jholhewres/warp/pkg/warp/job"
)

// Registry stores a Scheduler's jobs indexed by ID, with a secondary
// by-name index enforcing the uniqueness invariant from §5.
type Registry struct {
	mu      sync.RWMutex
	jobs    map[string]*job.Job
	byName  map[string]string // name -> id
	nextSeq int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		jobs:   make(map[string]*job.Job),
		byName: make(map[string]string),
	}
}

// Add assigns j a fresh ID and inserts it, failing with ErrDuplicateName if
// a job with the same name already exists.
func (r *Registry) Add(j *job.Job) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if j.Name != "" {
		if _, exists := r.byName[j.Name]; exists {
			return "", ErrDuplicateName
		}
	}
	j.ID = uuid.NewString()
	j.Seq = r.nextSeq
	r.nextSeq++
	r.jobs[j.ID] = j
	if j.Name != "" {
		r.byName[j.Name] = j.ID
	}
	return j.ID, nil
}

// Get returns the job with the given ID.
func (r *Registry) Get(id string) (*job.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	return j, ok
}

// GetByName returns the job with the given name.
func (r *Registry) GetByName(name string) (*job.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.jobs[id], true
}

// Remove deletes the job with the given ID, returning ErrNotFound if it
// isn't registered.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.jobs, id)
	if j.Name != "" {
		delete(r.byName, j.Name)
	}
	return nil
}

// RemoveAll clears every job from the registry.
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = make(map[string]*job.Job)
	r.byName = make(map[string]string)
}

// Snapshot returns a stable copy of the currently registered jobs, safe to
// range over without holding the registry lock. Drivers call this once per
// dispatch step rather than holding the lock across user callbacks.
func (r *Registry) Snapshot() []*job.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	return out
}

// Len reports how many jobs are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
