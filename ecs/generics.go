package ecs

import "fmt"

func Add[T any](w *World, e Entity, kind ComponentKind[T], value *T) error {
	if value == nil {
		return fmt.Errorf("add %s to entity %v: %w", kind.Name(), e, ErrNilComponent)
	}
	return w.AddComponent(e, kind.ID(), value)
}

func Remove[T any](w *World, e Entity, kind ComponentKind[T]) error {
	return w.RemoveComponent(e, kind.ID())
}

func RemoveIfExists[T any](w *World, e Entity, kind ComponentKind[T]) bool {
	return w.RemoveComponentIfExists(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind ComponentKind[T]) bool {
	c := w.entities.get(e)
	return c != nil && c.mask.Has(kind.ID())
}

func Get[T any](w *World, e Entity, kind ComponentKind[T]) (*T, bool) {
	view := w.Components(e)
	if view == nil {
		return nil, false
	}
	return Read(view, kind)
}

// ForEach visits every entity holding kind. The entity list is copied first
// so fn may add or remove components.
func ForEach[T any](w *World, kind ComponentKind[T], fn func(Entity, *T)) {
	set := w.stores[kind.ID()]
	if set == nil {
		return
	}
	ents := append([]Entity(nil), set.Entities()...)
	for _, e := range ents {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}
