// Package sitelock serializes write operations per site name. Operations on different sites
// proceed in parallel; operations on the same site run one at a time.
package sitelock

import (
	"context"
	"sync"
)

// Registry hands out per-name locks. Entries are reference counted and dropped once no caller
// holds or waits for them, so the registry does not grow with the number of distinct names.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	// sem is a one-slot semaphore so that acquisition can honor context cancellation.
	sem  chan struct{}
	refs int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*entry)}
}

// Lock blocks until the lock for name is held or ctx is done. On success the returned function
// releases the lock; it must be called exactly once.
func (r *Registry) Lock(ctx context.Context, name string) (func(), error) {
	e := r.acquireRef(name)
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		r.releaseRef(name, e)
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			r.releaseRef(name, e)
		})
	}, nil
}

// TryLock acquires the lock for name without waiting. It reports false if the lock is held.
func (r *Registry) TryLock(name string) (func(), bool) {
	e := r.acquireRef(name)
	select {
	case e.sem <- struct{}{}:
	default:
		r.releaseRef(name, e)
		return nil, false
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			r.releaseRef(name, e)
		})
	}, true
}

// Len returns the number of names with an active holder or waiter.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}

func (r *Registry) acquireRef(name string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.locks[name]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		r.locks[name] = e
	}
	e.refs++
	return e
}

func (r *Registry) releaseRef(name string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(r.locks, name)
	}
}
