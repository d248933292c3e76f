package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// TTLSystem counts TTL components down in game time and queues the entity
// for removal when the TTL reaches zero.
type TTLSystem struct {
	ecs.SystemBase
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Name() string { return "ttl" }

func (s *TTLSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.TTLComponent)
}

func (s *TTLSystem) Update(dt float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	w := s.World()
	for e, a := range aspects {
		ttl, ok := ecs.Read(a, component.TTLComponent.Kind())
		if !ok {
			continue
		}
		ttl.RemainingMs -= dt
		if ttl.RemainingMs > 0 || w.PendingRemoval(e) {
			continue
		}
		s.Events().Push(ecs.Event{Type: EventExpired, Entity: e})
		w.RemoveEntity(e)
	}
}
