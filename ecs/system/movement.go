package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// MovementSystem integrates Velocity into Position.
type MovementSystem struct {
	ecs.SystemBase
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Name() string { return "movement" }

func (s *MovementSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent, component.VelocityComponent)
}

func (s *MovementSystem) Update(dt float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	seconds := dt / 1000
	for _, a := range aspects {
		pos, ok := ecs.Read(a, component.PositionComponent.Kind())
		if !ok {
			continue
		}
		vel, ok := ecs.Read(a, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		pos.Move(vel.Mult(seconds))
	}
}
