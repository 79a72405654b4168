package app

import (
	"context"
	"sync"
	"time"
)

// Registry maps session IDs to their UI state. Entries are evicted after
// a period of inactivity by a janitor loop; an evicted entry simply means
// the next request rebuilds fresh state, the session itself lives in the
// session store.
type Registry struct {
	mu      sync.Mutex
	idle    time.Duration
	entries map[string]*registryEntry
}

type registryEntry struct {
	state    *State
	lastSeen time.Time
}

// NewRegistry creates a registry evicting entries idle longer than idle.
func NewRegistry(idle time.Duration) *Registry {
	return &Registry{idle: idle, entries: map[string]*registryEntry{}}
}

// Get returns the state for a session and refreshes its activity stamp.
func (r *Registry) Get(sessionID string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.state, true
}

// Put installs state for a session, replacing any previous entry.
func (r *Registry) Put(sessionID string, st *State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sessionID] = &registryEntry{state: st, lastSeen: time.Now()}
}

// Delete drops a session's state, as on logout or session teardown.
func (r *Registry) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// StartJanitor evicts idle entries until ctx is cancelled.
func (r *Registry) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

func (r *Registry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-r.idle)
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
		}
	}
}
