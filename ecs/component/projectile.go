package component

import "github.com/milk9111/brawler/ecs"

// Projectile is removed when it touches a wall.
type Projectile struct {
	Owner ecs.Entity
}

var ProjectileComponent = ecs.NewComponent[Projectile]("Projectile")
