package ecs

import (
	"slices"
	"strconv"
)

// Entity is an opaque handle. Ids are assigned monotonically from 1 and only
// reused after World.Clear.
type Entity uint32

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// EntitySet is a plain set of entities.
type EntitySet map[Entity]struct{}

func (s EntitySet) Add(e Entity) {
	s[e] = struct{}{}
}

func (s EntitySet) Remove(e Entity) {
	delete(s, e)
}

func (s EntitySet) Has(e Entity) bool {
	_, ok := s[e]
	return ok
}

func (s EntitySet) Len() int {
	return len(s)
}

func (s EntitySet) Clear() {
	clear(s)
}

// Sorted returns the members in ascending id order.
func (s EntitySet) Sorted() []Entity {
	out := make([]Entity, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}
