package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"go.uber.org/zap"
)

// DamageSystem applies attacks to the vulnerable shapes they touch. Every
// victim, shield or not, is added to the attack's resolved set so a single
// attack lands at most once per victim. A shield touching the attack blocks
// it for the shield's owner.
type DamageSystem struct {
	ecs.SystemBase
	blocked ecs.EntitySet
}

func NewDamageSystem() *DamageSystem {
	return &DamageSystem{blocked: make(ecs.EntitySet)}
}

func (s *DamageSystem) Name() string { return "damage" }

func (s *DamageSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.AttackComponent, component.CollisionShapeComponent)
}

func (s *DamageSystem) Watches() []ecs.ComponentID {
	return ecs.Kinds(component.CollisionShapeComponent)
}

func (s *DamageSystem) Update(_ float64, aspects map[ecs.Entity]*ecs.Aspect, dirty ecs.EntitySet, _ ecs.Clock) {
	for _, e := range dirty.Sorted() {
		a, ok := aspects[e]
		if !ok {
			continue
		}
		atk, ok := ecs.Read(a, component.AttackComponent.Kind())
		if !ok {
			continue
		}
		shape, ok := ecs.Read(a, component.CollisionShapeComponent.Kind())
		if !ok || shape.Disabled() || shape.Fresh().Len() == 0 {
			continue
		}
		s.resolve(e, atk, shape)
	}
}

func (s *DamageSystem) resolve(attacker ecs.Entity, atk *component.Attack, shape *component.CollisionShape) {
	w := s.World()
	contacts := shape.Fresh().Entities()

	s.blocked.Clear()
	for _, other := range contacts {
		shield, ok := ecs.Get(w, other, component.ShieldComponent.Kind())
		if !ok || shield.Owner == atk.Owner || shape.Resolved().Has(other) {
			continue
		}
		shield.Blocked++
		s.blocked.Add(shield.Owner)
		shape.Resolved().Add(other)
	}

	for _, victim := range contacts {
		if victim == atk.Owner || shape.Resolved().Has(victim) {
			continue
		}
		victimShape, ok := ecs.Get(w, victim, component.CollisionShapeComponent.Kind())
		if !ok || !victimShape.Types().Has(component.CollisionVulnerable) {
			continue
		}
		shape.Resolved().Add(victim)

		if s.blocked.Has(victim) {
			s.Events().Push(ecs.Event{Type: EventBlocked, Entity: attacker, Other: victim})
			continue
		}
		health, ok := ecs.Get(w, victim, component.HealthComponent.Kind())
		if !ok || !health.ApplyDamage(atk.Damage) {
			continue
		}
		health.InvulnerableMs = max(health.InvulnerableMs, atk.InvulnerableMs)
		s.Events().Push(ecs.Event{Type: EventDamage, Entity: attacker, Other: victim, Data: atk.Damage})

		if atk.Knockback > 0 {
			if vel, ok := ecs.Get(w, victim, component.VelocityComponent.Kind()); ok {
				info, _ := shape.Fresh().Get(victim)
				if dir := info.MTV().Neg(); dir.LengthSq() > 0 {
					vel.Vector = vel.Add(dir.Normalize().Mult(atk.Knockback))
				}
			}
		}
		if atk.HitFreezeMs > 0 {
			w.SlowMotion(0, atk.HitFreezeMs)
		}
		if !health.IsAlive() {
			w.Logger().Debug("entity killed", zap.Uint32("victim", uint32(victim)), zap.Uint32("attacker", uint32(attacker)))
			s.Events().Push(ecs.Event{Type: EventDeath, Entity: victim, Other: attacker})
			w.RemoveEntity(victim)
		}
	}
}
