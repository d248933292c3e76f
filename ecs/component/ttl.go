package component

import "github.com/milk9111/brawler/ecs"

// TTL destroys its entity once RemainingMs of game time has passed.
type TTL struct {
	RemainingMs float64
}

var TTLComponent = ecs.NewComponent[TTL]("TTL")
