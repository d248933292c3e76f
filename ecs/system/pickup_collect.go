package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// PickupCollectSystem hands pickups to the collectors touching them. A pickup
// is queued for removal once collected so a second collector in the same
// frame cannot take it again.
type PickupCollectSystem struct {
	ecs.SystemBase
}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Name() string { return "pickup_collect" }

func (s *PickupCollectSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.CollectorComponent, component.CollisionShapeComponent)
}

func (s *PickupCollectSystem) Watches() []ecs.ComponentID {
	return ecs.Kinds(component.CollisionShapeComponent)
}

func (s *PickupCollectSystem) Update(_ float64, aspects map[ecs.Entity]*ecs.Aspect, dirty ecs.EntitySet, _ ecs.Clock) {
	w := s.World()
	for _, e := range dirty.Sorted() {
		a, ok := aspects[e]
		if !ok {
			continue
		}
		collector, ok := ecs.Read(a, component.CollectorComponent.Kind())
		if !ok {
			continue
		}
		shape, ok := ecs.Read(a, component.CollisionShapeComponent.Kind())
		if !ok || shape.Fresh().Len() == 0 {
			continue
		}
		for _, item := range shape.Fresh().Entities() {
			if w.PendingRemoval(item) {
				continue
			}
			pickup, ok := ecs.Get(w, item, component.PickupComponent.Kind())
			if !ok {
				continue
			}
			collector.Score += pickup.Value
			collector.Collected++
			s.Events().Push(ecs.Event{Type: EventPickup, Entity: e, Other: item, Data: pickup.Kind})
			w.RemoveEntity(item)
		}
	}
}
