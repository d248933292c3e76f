package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// HealthSystem counts invulnerability windows down.
type HealthSystem struct {
	ecs.SystemBase
}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

func (s *HealthSystem) Name() string { return "health" }

func (s *HealthSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.HealthComponent)
}

func (s *HealthSystem) Update(dt float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	for _, a := range aspects {
		if h, ok := ecs.Read(a, component.HealthComponent.Kind()); ok {
			h.Tick(dt)
		}
	}
}
