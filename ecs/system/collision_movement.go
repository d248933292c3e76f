package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// CollisionMovementSystem pushes mobile solids out of the solids they
// overlap, along each contact's minimum translation vector, and removes the
// velocity component heading into the obstacle. Two mobiles split the push.
type CollisionMovementSystem struct {
	ecs.SystemBase
}

func NewCollisionMovementSystem() *CollisionMovementSystem {
	return &CollisionMovementSystem{}
}

func (s *CollisionMovementSystem) Name() string { return "collision_movement" }

func (s *CollisionMovementSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent, component.CollisionShapeComponent)
}

func (s *CollisionMovementSystem) Update(_ float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	w := s.World()
	for _, e := range sortedAspects(aspects) {
		a := aspects[e]
		shape, ok := ecs.Read(a, component.CollisionShapeComponent.Kind())
		if !ok || shape.Disabled() || shape.Fresh().Len() == 0 {
			continue
		}
		if !shape.Types().Has(component.CollisionMobile | component.CollisionSolid) {
			continue
		}
		pos, ok := ecs.Read(a, component.PositionComponent.Kind())
		if !ok {
			continue
		}
		vel, hasVel := ecs.Read(a, component.VelocityComponent.Kind())

		var push cp.Vector
		for _, other := range shape.Fresh().Entities() {
			otherShape, ok := ecs.Get(w, other, component.CollisionShapeComponent.Kind())
			if !ok || !otherShape.Types().Has(component.CollisionSolid) {
				continue
			}
			info, _ := shape.Fresh().Get(other)
			mtv := info.MTV()
			if otherShape.Types().Has(component.CollisionMobile) {
				mtv = mtv.Mult(0.5)
			}
			push = push.Add(mtv)

			if hasVel && info.Amount != 0 {
				n := mtv.Normalize()
				if into := vel.Dot(n); into < 0 {
					vel.Vector = vel.Sub(n.Mult(into))
				}
			}
		}
		pos.Move(push)
	}
}
