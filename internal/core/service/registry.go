package service

import (
	"sync"
	"time"
)

type registryEntry[T any] struct {
	value    T
	lastUsed time.Time
}

// Registry keeps one dashboard instance per session so that its action
// target and refresh state survive across requests.
type Registry[T any] struct {
	mu    sync.Mutex
	items map[string]*registryEntry[T]
	now   func() time.Time
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]*registryEntry[T]), now: time.Now}
}

// Get returns the instance for sessionID, building it with create on first use.
// The second result is true when the instance was just created.
func (r *Registry[T]) Get(sessionID string, create func() T) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.items[sessionID]; ok {
		e.lastUsed = r.now()
		return e.value, false
	}
	v := create()
	r.items[sessionID] = &registryEntry[T]{value: v, lastUsed: r.now()}
	return v, true
}

// Drop forgets the session's instance.
func (r *Registry[T]) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.items, sessionID)
	r.mu.Unlock()
}

// Sweep removes instances unused for longer than idle and returns how many went.
func (r *Registry[T]) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for id, e := range r.items {
		if e.lastUsed.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n
}

// Len reports the number of live instances.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
