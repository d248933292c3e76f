package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// ProjectileStopSystem removes projectiles that touched a wall this frame.
type ProjectileStopSystem struct {
	ecs.SystemBase
}

func NewProjectileStopSystem() *ProjectileStopSystem {
	return &ProjectileStopSystem{}
}

func (s *ProjectileStopSystem) Name() string { return "projectile_stop" }

func (s *ProjectileStopSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.ProjectileComponent, component.CollisionShapeComponent)
}

func (s *ProjectileStopSystem) Watches() []ecs.ComponentID {
	return ecs.Kinds(component.CollisionShapeComponent)
}

func (s *ProjectileStopSystem) Update(_ float64, aspects map[ecs.Entity]*ecs.Aspect, dirty ecs.EntitySet, _ ecs.Clock) {
	w := s.World()
	for _, e := range dirty.Sorted() {
		a, ok := aspects[e]
		if !ok {
			continue
		}
		shape, ok := ecs.Read(a, component.CollisionShapeComponent.Kind())
		if !ok || shape.Fresh().Len() == 0 {
			continue
		}
		for _, other := range shape.Fresh().Entities() {
			wall, ok := ecs.Get(w, other, component.CollisionShapeComponent.Kind())
			if !ok || !wall.Types().Has(component.CollisionWall) {
				continue
			}
			s.Events().Push(ecs.Event{Type: EventProjectileStop, Entity: e, Other: other})
			w.RemoveEntity(e)
			break
		}
	}
}
