package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
)

// Velocity is measured in world units per second.
type Velocity struct {
	cp.Vector
}

var VelocityComponent = ecs.NewComponent[Velocity]("Velocity")
