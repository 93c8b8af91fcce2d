package space

import (
	"sync"

	"github.com/san-kum/rigidsim/internal/body"
)

// Registry owns body membership. Queries return snapshots in insertion
// order, so callers may iterate while the space prepares the next step.
// Membership is serialized behind a mutex; the solver mirrors it from a
// snapshot taken at the start of each advance, so add/remove are safe to
// call from the caller context even while a solve is in flight.
type Registry struct {
	mu     sync.RWMutex
	index  map[uint64]int
	bodies []body.Body
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[uint64]int)}
}

// Add makes b a member. Adding an existing member is a no-op and reports
// false.
func (r *Registry) Add(b body.Body) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[b.ID()]; ok {
		return false
	}
	r.index[b.ID()] = len(r.bodies)
	r.bodies = append(r.bodies, b)
	b.SetInWorld(true)
	return true
}

// Remove unmarks membership. Removing a non-member is a no-op and reports
// false.
func (r *Registry) Remove(b body.Body) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[b.ID()]
	if !ok {
		return false
	}
	delete(r.index, b.ID())
	r.bodies = append(r.bodies[:i], r.bodies[i+1:]...)
	for j := i; j < len(r.bodies); j++ {
		r.index[r.bodies[j].ID()] = j
	}
	b.SetInWorld(false)
	return true
}

// All returns a snapshot of every member.
func (r *Registry) All() []body.Body {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]body.Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// ByKind returns a snapshot of members with the given kind tag.
func (r *Registry) ByKind(k body.Kind) []body.Body {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []body.Body
	for _, b := range r.bodies {
		if b.Kind() == k {
			out = append(out, b)
		}
	}
	return out
}

// Elements returns a snapshot of the element bodies.
func (r *Registry) Elements() []*body.Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*body.Element
	for _, b := range r.bodies {
		if el, ok := b.(*body.Element); ok {
			out = append(out, el)
		}
	}
	return out
}

func (r *Registry) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bodies) == 0
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bodies)
}
