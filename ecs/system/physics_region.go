package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// PhysicsRegionSystem nudges every mobile a region touched last frame. It
// runs right after Movement so the correction lands in the same frame's
// collision pass.
type PhysicsRegionSystem struct {
	ecs.SystemBase
}

func NewPhysicsRegionSystem() *PhysicsRegionSystem {
	return &PhysicsRegionSystem{}
}

func (s *PhysicsRegionSystem) Name() string { return "physics_region" }

func (s *PhysicsRegionSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PhysicsRegionComponent, component.CollisionShapeComponent)
}

func (s *PhysicsRegionSystem) Update(dt float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	w := s.World()
	seconds := dt / 1000
	for _, e := range sortedAspects(aspects) {
		a := aspects[e]
		region, ok := ecs.Read(a, component.PhysicsRegionComponent.Kind())
		if !ok {
			continue
		}
		shape, ok := ecs.Read(a, component.CollisionShapeComponent.Kind())
		if !ok || shape.Disabled() {
			continue
		}
		for _, mobile := range shape.Fresh().Entities() {
			pos, ok := ecs.Get(w, mobile, component.PositionComponent.Kind())
			if !ok {
				continue
			}
			step := region.Push
			if vel, ok := ecs.Get(w, mobile, component.VelocityComponent.Kind()); ok {
				// Movement already applied the full velocity this frame.
				step = step.Add(vel.Mult(region.VelocityScale - 1))
			}
			pos.Move(step.Mult(seconds))
		}
	}
}

// sortedAspects returns the aspect keys in ascending order so systems whose
// effects depend on iteration order stay deterministic.
func sortedAspects(aspects map[ecs.Entity]*ecs.Aspect) []ecs.Entity {
	set := make(ecs.EntitySet, len(aspects))
	for e := range aspects {
		set.Add(e)
	}
	return set.Sorted()
}

