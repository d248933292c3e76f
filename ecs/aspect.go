package ecs

import "slices"

// Components is a read-only view over one entity's components. It stays
// valid as a value after the entity is destroyed but then reports nothing.
type Components struct {
	world  *World
	entity Entity
}

func (c *Components) Entity() Entity {
	if c == nil {
		return 0
	}
	return c.entity
}

// Alive reports whether the viewed entity still exists.
func (c *Components) Alive() bool {
	return c != nil && c.world != nil && c.world.entities.isAlive(c.entity)
}

func (c *Components) Has(kind ComponentID) bool {
	if c == nil || c.world == nil {
		return false
	}
	cont := c.world.entities.get(c.entity)
	return cont != nil && cont.mask.Has(kind)
}

func (c *Components) Get(kind ComponentID) (any, bool) {
	if !c.Has(kind) {
		return nil, false
	}
	v := c.world.stores[kind].Get(c.entity)
	return v, v != nil
}

// Kinds returns the entity's component kinds in ascending id order.
func (c *Components) Kinds() []ComponentID {
	if c == nil || c.world == nil {
		return nil
	}
	cont := c.world.entities.get(c.entity)
	if cont == nil {
		return nil
	}
	return slices.Clone(cont.kinds)
}

// Aspect is a system's cached view of one tracked entity. State holds
// whatever the system wants to keep per entity.
type Aspect struct {
	*Components
	State any
}

// View is satisfied by *Components and *Aspect.
type View interface {
	Get(kind ComponentID) (any, bool)
}

// Read fetches a typed component through a view.
func Read[T any](v View, kind ComponentKind[T]) (*T, bool) {
	if v == nil {
		return nil, false
	}
	raw, ok := v.Get(kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := raw.(*T)
	return cast, ok && cast != nil
}
