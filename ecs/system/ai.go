package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"go.uber.org/zap"
)

// Brain decides what an AI entity does next. The AI system calls Think on
// the entity's schedule, not every frame.
type Brain interface {
	Think(ctx *AIContext) error
}

// BrainFactory builds the brain for a newly tracked AI entity.
type BrainFactory func(ai *component.AI) (Brain, error)

// AIContext is what a brain sees of the world during one think.
type AIContext struct {
	World    *ecs.World
	Entity   ecs.Entity
	AI       *component.AI
	Position *component.Position
	// Velocity is nil for entities that cannot move themselves.
	Velocity *component.Velocity
	Clock    ecs.Clock
	// Elapsed is the game time in ms since the previous think.
	Elapsed float64
}

// TargetPosition returns the position of AI.Target while it is alive.
func (c *AIContext) TargetPosition() (cp.Vector, bool) {
	if c.AI == nil || !c.AI.Target.Valid() {
		return cp.Vector{}, false
	}
	pos, ok := ecs.Get(c.World, c.AI.Target, component.PositionComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return pos.Vec(), true
}

func (c *AIContext) SetVelocity(v cp.Vector) {
	if c.Velocity == nil {
		return
	}
	c.Velocity.Vector = v
}

type aiState struct {
	brain      Brain
	sinceThink float64
	failing    bool
}

// AISystem runs each AI entity's brain every AI.ThinkEveryMs of game time.
type AISystem struct {
	ecs.SystemBase
	factory BrainFactory
	reload  bool
}

func NewAISystem(factory BrainFactory) *AISystem {
	return &AISystem{factory: factory}
}

func (s *AISystem) Name() string { return "ai" }

func (s *AISystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.AIComponent, component.PositionComponent)
}

// RequestReload rebuilds every brain at the start of the next update, e.g.
// after a script changed on disk.
func (s *AISystem) RequestReload() {
	s.reload = true
}

func (s *AISystem) OnAdd(a *ecs.Aspect) {
	ai, _ := ecs.Read(a, component.AIComponent.Kind())
	// Think on the first update after the entity appears.
	st := &aiState{sinceThink: ai.ThinkEveryMs}
	st.brain = s.build(a.Entity(), ai)
	a.State = st
}

func (s *AISystem) build(e ecs.Entity, ai *component.AI) Brain {
	if s.factory == nil {
		return nil
	}
	brain, err := s.factory(ai)
	if err != nil {
		s.World().Logger().Warn("ai brain unavailable",
			zap.Uint32("entity", uint32(e)),
			zap.String("script", ai.Script),
			zap.Error(err),
		)
		return nil
	}
	return brain
}

func (s *AISystem) Update(dt float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, clock ecs.Clock) {
	reload := s.reload
	s.reload = false

	for _, e := range sortedAspects(aspects) {
		a := aspects[e]
		st, ok := a.State.(*aiState)
		if !ok {
			continue
		}
		ai, ok := ecs.Read(a, component.AIComponent.Kind())
		if !ok {
			continue
		}
		if reload {
			st.brain = s.build(e, ai)
			st.failing = false
		}
		st.sinceThink += dt
		if st.brain == nil || st.sinceThink < ai.ThinkEveryMs {
			continue
		}

		pos, _ := ecs.Read(a, component.PositionComponent.Kind())
		vel, _ := ecs.Get(s.World(), e, component.VelocityComponent.Kind())
		ctx := &AIContext{
			World:    s.World(),
			Entity:   e,
			AI:       ai,
			Position: pos,
			Velocity: vel,
			Clock:    clock,
			Elapsed:  st.sinceThink,
		}
		st.sinceThink = 0

		if err := st.brain.Think(ctx); err != nil {
			// log once per failure streak
			if !st.failing {
				s.World().Logger().Warn("ai think failed", zap.Uint32("entity", uint32(e)), zap.Error(err))
			}
			st.failing = true
			continue
		}
		st.failing = false
	}
}
