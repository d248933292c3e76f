package ecs

// Signal is embedded by components that report their own mutations. The
// world binds it to the owning entity when the component is attached.
type Signal struct {
	world  *World
	entity Entity
	kind   ComponentID
}

type signaler interface {
	bindSignal(w *World, e Entity, kind ComponentID)
	unbindSignal()
	bound() bool
}

func (s *Signal) bindSignal(w *World, e Entity, kind ComponentID) {
	s.world = w
	s.entity = e
	s.kind = kind
}

func (s *Signal) unbindSignal() {
	s.world = nil
	s.entity = 0
}

func (s *Signal) bound() bool {
	return s.world != nil || s.entity != 0
}

// Dirty marks the owning component dirty. It does nothing while detached.
func (s *Signal) Dirty() {
	if s == nil || s.world == nil {
		return
	}
	s.world.MarkDirty(s.entity, s.kind)
}

// Owner returns the entity the component is attached to, or 0.
func (s *Signal) Owner() Entity {
	if s == nil {
		return 0
	}
	return s.entity
}
