package ecs

import (
	"slices"
)

// container is the per-entity component bookkeeping. Values live in the
// world's per-kind SparseSets; the container only tracks which kinds exist.
type container struct {
	mask  Mask
	kinds []ComponentID // sorted
	view  *Components
}

func (c *container) add(id ComponentID) {
	c.mask.Set(id)
	i, _ := slices.BinarySearch(c.kinds, id)
	c.kinds = slices.Insert(c.kinds, i, id)
}

func (c *container) remove(id ComponentID) {
	c.mask.Unset(id)
	if i, ok := slices.BinarySearch(c.kinds, id); ok {
		c.kinds = slices.Delete(c.kinds, i, i+1)
	}
}

// entityStore hands out monotonically increasing entity ids.
type entityStore struct {
	nextID Entity
	alive  map[Entity]*container
}

func (s *entityStore) create(w *World) Entity {
	if s.alive == nil {
		s.alive = make(map[Entity]*container)
	}
	s.nextID++
	e := s.nextID
	s.alive[e] = &container{view: &Components{world: w, entity: e}}
	return e
}

func (s *entityStore) get(e Entity) *container {
	if s == nil || s.alive == nil {
		return nil
	}
	return s.alive[e]
}

func (s *entityStore) destroy(e Entity) {
	if s == nil || s.alive == nil {
		return
	}
	delete(s.alive, e)
}

func (s *entityStore) isAlive(e Entity) bool {
	return s.get(e) != nil
}

// sorted returns live entities in ascending id order.
func (s *entityStore) sorted() []Entity {
	out := make([]Entity, 0, len(s.alive))
	for e := range s.alive {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

func (s *entityStore) reset() {
	s.nextID = 0
	clear(s.alive)
}
