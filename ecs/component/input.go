package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
)

// Input stores per-frame input state for a player controlled entity.
type Input struct {
	MoveX         float64
	MoveY         float64
	AttackPressed bool
	ShieldHeld    bool
}

var InputComponent = ecs.NewComponent[Input]("Input")

// Fighter describes how a player controlled entity moves and swings.
type Fighter struct {
	Speed        float64
	AttackDamage float64
	Knockback    float64
	Reach        float64
	AttackSize   cp.Vector
	AttackMs     float64
	CooldownMs   float64

	// Facing is the last non-zero move direction.
	Facing   cp.Vector
	cooldown float64
	shield   ecs.Entity
}

var FighterComponent = ecs.NewComponent[Fighter]("Fighter")

// Ready reports whether the attack cooldown has elapsed.
func (f *Fighter) Ready() bool {
	return f.cooldown <= 0
}

func (f *Fighter) StartCooldown() {
	f.cooldown = f.CooldownMs
}

func (f *Fighter) Tick(dt float64) {
	if f.cooldown > 0 {
		f.cooldown -= dt
	}
}

// Shield returns the raised shield entity, if any.
func (f *Fighter) Shield() (ecs.Entity, bool) {
	return f.shield, f.shield.Valid()
}

func (f *Fighter) SetShield(e ecs.Entity) {
	f.shield = e
}
