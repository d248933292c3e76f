package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"go.uber.org/zap"
)

const shieldThickness = 6

// PlayerControlSystem turns Input into velocity, attack swings and a raised
// shield for every Fighter.
type PlayerControlSystem struct {
	ecs.SystemBase
}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (s *PlayerControlSystem) Name() string { return "player_control" }

func (s *PlayerControlSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.InputComponent, component.FighterComponent, component.PositionComponent, component.VelocityComponent)
}

func (s *PlayerControlSystem) OnRemove(a *ecs.Aspect) {
	fighter, ok := ecs.Read(a, component.FighterComponent.Kind())
	if !ok {
		return
	}
	if shield, raised := fighter.Shield(); raised {
		s.World().RemoveEntity(shield)
		fighter.SetShield(0)
	}
}

func (s *PlayerControlSystem) Update(dt float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	for _, e := range sortedAspects(aspects) {
		a := aspects[e]
		input, _ := ecs.Read(a, component.InputComponent.Kind())
		fighter, _ := ecs.Read(a, component.FighterComponent.Kind())
		pos, _ := ecs.Read(a, component.PositionComponent.Kind())
		vel, _ := ecs.Read(a, component.VelocityComponent.Kind())
		if input == nil || fighter == nil || pos == nil || vel == nil {
			continue
		}

		fighter.Tick(dt)
		move := cp.Vector{X: input.MoveX, Y: input.MoveY}
		if move.LengthSq() > 1 {
			move = move.Normalize()
		}
		vel.Vector = move.Mult(fighter.Speed)
		if move.LengthSq() > 0 {
			fighter.Facing = move.Normalize()
		}
		if fighter.Facing.LengthSq() == 0 {
			fighter.Facing = cp.Vector{X: 1}
		}

		s.updateShield(e, input, fighter, pos)
		if input.AttackPressed && fighter.Ready() {
			s.swing(e, fighter, pos)
			fighter.StartCooldown()
		}
	}
}

func (s *PlayerControlSystem) front(fighter *component.Fighter, pos *component.Position) cp.Vector {
	return pos.Vec().Add(fighter.Facing.Mult(fighter.Reach))
}

func (s *PlayerControlSystem) swing(owner ecs.Entity, fighter *component.Fighter, pos *component.Position) {
	w := s.World()
	at := s.front(fighter, pos)
	e := w.AddEntity()
	err := spawn(w, e,
		func() error {
			p := component.NewPosition(at.X, at.Y)
			p.SetAngle(fighter.Facing.ToAngle())
			return ecs.Add(w, e, component.PositionComponent.Kind(), p)
		},
		func() error {
			shape := component.NewRectangle(fighter.AttackSize.X, fighter.AttackSize.Y, cp.Vector{}, component.CollisionAttack)
			return ecs.Add(w, e, component.CollisionShapeComponent.Kind(), shape)
		},
		func() error {
			return ecs.Add(w, e, component.AttackComponent.Kind(), &component.Attack{
				Damage:         fighter.AttackDamage,
				Knockback:      fighter.Knockback,
				Owner:          owner,
				HitFreezeMs:    40,
				InvulnerableMs: 200,
			})
		},
		func() error {
			return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{RemainingMs: fighter.AttackMs})
		},
	)
	if err != nil {
		w.Logger().Warn("spawn swing failed", zap.Stringer("owner", owner), zap.Error(err))
		return
	}
	s.Events().Push(ecs.Event{Type: EventSwing, Entity: owner, Other: e})
}

func (s *PlayerControlSystem) updateShield(owner ecs.Entity, input *component.Input, fighter *component.Fighter, pos *component.Position) {
	w := s.World()
	shield, raised := fighter.Shield()
	switch {
	case input.ShieldHeld && raised:
		if p, ok := ecs.Get(w, shield, component.PositionComponent.Kind()); ok {
			p.Set(s.front(fighter, pos))
			p.SetAngle(fighter.Facing.ToAngle())
		}
	case input.ShieldHeld:
		at := s.front(fighter, pos)
		e := w.AddEntity()
		err := spawn(w, e,
			func() error {
				p := component.NewPosition(at.X, at.Y)
				p.SetAngle(fighter.Facing.ToAngle())
				return ecs.Add(w, e, component.PositionComponent.Kind(), p)
			},
			func() error {
				shape := component.NewRectangle(shieldThickness, fighter.AttackSize.Y*1.5, cp.Vector{}, component.CollisionShield)
				return ecs.Add(w, e, component.CollisionShapeComponent.Kind(), shape)
			},
			func() error {
				return ecs.Add(w, e, component.ShieldComponent.Kind(), &component.Shield{Owner: owner})
			},
		)
		if err != nil {
			w.Logger().Warn("raise shield failed", zap.Stringer("owner", owner), zap.Error(err))
			return
		}
		fighter.SetShield(e)
		s.Events().Push(ecs.Event{Type: EventShieldRaised, Entity: owner, Other: e})
	case raised:
		w.RemoveEntity(shield)
		fighter.SetShield(0)
	}
}

// spawn runs each step in order and queues e for removal if any fails.
func spawn(w *ecs.World, e ecs.Entity, steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			w.RemoveEntity(e)
			return err
		}
	}
	return nil
}
