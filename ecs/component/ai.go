package component

import "github.com/milk9111/brawler/ecs"

// AI attaches a scripted brain to an entity.
type AI struct {
	// Script names a brain script, e.g. "chaser.tengo".
	Script string
	// ThinkEveryMs spaces out brain runs in game time. Zero thinks every frame.
	ThinkEveryMs float64
	MoveSpeed    float64
	Target       ecs.Entity
}

var AIComponent = ecs.NewComponent[AI]("AI")
