package component

import "github.com/milk9111/brawler/ecs"

// Attack deals damage to every vulnerable shape it touches, once per victim.
type Attack struct {
	Damage    float64
	Knockback float64
	// Owner is never damaged by its own attack.
	Owner ecs.Entity
	// HitFreezeMs freezes gameplay on a successful hit.
	HitFreezeMs float64
	// InvulnerableMs is granted to the victim after a hit.
	InvulnerableMs float64
}

var AttackComponent = ecs.NewComponent[Attack]("Attack")

// Shield blocks attacks that overlap it before they reach its owner.
type Shield struct {
	Owner   ecs.Entity
	Blocked int
}

var ShieldComponent = ecs.NewComponent[Shield]("Shield")
