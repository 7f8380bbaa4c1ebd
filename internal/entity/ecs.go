// internal/entity/ecs.go
package entity

import "go-td-core/internal/types"

// World hands out entity ids and keeps the simulation clock.
type World struct {
	GameTime float64
	NextID   types.EntityID
}

func NewWorld() *World {
	return &World{NextID: 1}
}

// NewEntity reserves the next id.
func (w *World) NewEntity() types.EntityID {
	id := w.NextID
	w.NextID++
	return id
}

// Registry stores live entities of one kind and iterates them in insertion
// order, which keeps ticks deterministic.
type Registry[T any] struct {
	items map[types.EntityID]T
	order []types.EntityID
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[types.EntityID]T)}
}

// Add stores v under id. Re-adding an id replaces the value in place.
func (r *Registry[T]) Add(id types.EntityID, v T) {
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = v
}

func (r *Registry[T]) Get(id types.EntityID) (T, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *Registry[T]) Remove(id types.EntityID) bool {
	if _, exists := r.items[id]; !exists {
		return false
	}
	delete(r.items, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveIf drops every entity for which fn returns true, keeping order.
func (r *Registry[T]) RemoveIf(fn func(T) bool) []T {
	var removed []T
	kept := r.order[:0]
	for _, id := range r.order {
		v := r.items[id]
		if fn(v) {
			removed = append(removed, v)
			delete(r.items, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return removed
}

func (r *Registry[T]) Len() int {
	return len(r.order)
}

// Values returns a snapshot in insertion order.
func (r *Registry[T]) Values() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Each visits entities in insertion order.
func (r *Registry[T]) Each(fn func(types.EntityID, T)) {
	for _, id := range r.order {
		fn(id, r.items[id])
	}
}

func (r *Registry[T]) Clear() {
	r.items = make(map[types.EntityID]T)
	r.order = nil
}
