package ecs

import "github.com/HAAIL-Universe/tiltrunner/ecs/component"

// System updates one concern of the world each frame. dt is elapsed real
// time in seconds, already clamped by the driver.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities and their component storage.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components. Returns
// false for stale or invalid handles.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return true
}

// IsAlive reports whether a handle refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// AddComponent attaches (or replaces) a component value on a live entity.
func (w *World) AddComponent(e Entity, kind component.Kind, v any) error {
	if kind == nil || !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.storage(kind.ID()).Set(e.id(), v)
	return nil
}

// GetComponent returns the stored value for a live entity.
func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if kind == nil || !kind.Valid() || !w.IsAlive(e) {
		return nil, false
	}
	store, ok := w.stores[kind.ID()]
	if !ok {
		return nil, false
	}
	return store.Get(e.id())
}

// HasComponent reports whether a live entity carries the component.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

// RemoveComponent detaches a component, reporting whether it was present.
func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if kind == nil || !kind.Valid() || !w.IsAlive(e) {
		return false
	}
	store, ok := w.stores[kind.ID()]
	if !ok {
		return false
	}
	return store.Remove(e.id())
}

// Query returns every live entity carrying all of the given kinds. Iterates
// the smallest store and probes the rest.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}

	var smallest *SparseSet
	rest := make([]*SparseSet, 0, len(kinds)-1)
	for _, k := range kinds {
		if k == nil || !k.Valid() {
			return nil
		}
		store, ok := w.stores[k.ID()]
		if !ok || store.Len() == 0 {
			return nil
		}
		if smallest == nil || store.Len() < smallest.Len() {
			if smallest != nil {
				rest = append(rest, smallest)
			}
			smallest = store
		} else {
			rest = append(rest, store)
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, id := range smallest.ids() {
		match := true
		for _, store := range rest {
			if !store.Has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.liveEntity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any one entity matching the kinds, typically a singleton.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	matches := w.Query(kinds...)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0], true
}

func (w *World) storage(id component.ComponentID) *SparseSet {
	store, ok := w.stores[id]
	if !ok {
		store = &SparseSet{}
		w.stores[id] = store
	}
	return store
}
