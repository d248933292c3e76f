package component

import "github.com/milk9111/brawler/ecs"

// Pickup is a collectible worth Value points.
type Pickup struct {
	Kind  string
	Value int
}

var PickupComponent = ecs.NewComponent[Pickup]("Pickup")

// Collector gathers pickups it touches.
type Collector struct {
	Score     int
	Collected int
}

var CollectorComponent = ecs.NewComponent[Collector]("Collector")
