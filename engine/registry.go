package engine

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Tickable is anything that takes part in the update and render cycles.
// Implementations must be comparable; pointers are the usual choice.
type Tickable interface {
	Update()
	Render(s Surface)
}

// Layouter is implemented by tickables whose geometry depends on the engine
// resolution. Layout runs right before Update on every tick.
type Layouter interface {
	Layout(res Resolution)
}

// Registry is an ordered set of tickables. Later entries render on top.
//
// Writers copy the list and publish the copy, so a pass that is already
// iterating keeps its own consistent view while a GUI swap restructures the
// registry.
type Registry struct {
	mu      sync.Mutex
	entries atomic.Pointer[[]Tickable]
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.entries.Store(&[]Tickable{})
	return r
}

// Add appends t unless it is already registered.
func (r *Registry) Add(t Tickable) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.entries.Load()
	if slices.Contains(current, t) {
		return false
	}

	next := make([]Tickable, len(current), len(current)+1)
	copy(next, current)
	next = append(next, t)
	r.entries.Store(&next)
	return true
}

// Remove deletes t, keeping the order of the remaining entries.
func (r *Registry) Remove(t Tickable) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.entries.Load()
	i := slices.Index(current, t)
	if i < 0 {
		return false
	}

	next := make([]Tickable, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	r.entries.Store(&next)
	return true
}

func (r *Registry) Contains(t Tickable) bool {
	return slices.Contains(*r.entries.Load(), t)
}

func (r *Registry) Len() int {
	return len(*r.entries.Load())
}

// Snapshot returns the current entries. The slice must not be modified.
func (r *Registry) Snapshot() []Tickable {
	return *r.entries.Load()
}

// UpdateAll lays out and updates every entry in registration order.
func (r *Registry) UpdateAll(res Resolution) {
	for _, t := range r.Snapshot() {
		if l, ok := t.(Layouter); ok {
			l.Layout(res)
		}
		t.Update()
	}
}

// RenderAll renders every entry in registration order.
func (r *Registry) RenderAll(s Surface) {
	for _, t := range r.Snapshot() {
		t.Render(s)
	}
}
