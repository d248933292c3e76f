package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
)

// PhysicsRegion changes how mobiles inside it move: their velocity is scaled
// by VelocityScale and Push (units per second) is added on top.
type PhysicsRegion struct {
	VelocityScale float64
	Push          cp.Vector
}

var PhysicsRegionComponent = ecs.NewComponent[PhysicsRegion]("PhysicsRegion")
