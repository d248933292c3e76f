package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// CollisionInfo is the minimum translation vector of an intersection:
// moving the first shape by Axis*Amount separates it from the second.
type CollisionInfo struct {
	Axis   cp.Vector
	Amount float64
}

// Reverse returns the same collision seen from the other shape.
func (c CollisionInfo) Reverse() CollisionInfo {
	return CollisionInfo{Axis: c.Axis, Amount: -c.Amount}
}

// MTV returns Axis scaled by Amount.
func (c CollisionInfo) MTV() cp.Vector {
	return c.Axis.Mult(c.Amount)
}

// Collides runs the separating axis test over axes1 and axes2. It reports the
// axis with the smallest overlap and the signed depth that pushes the first
// shape out of the second.
func Collides(vertices1, axes1, vertices2, axes2 []cp.Vector) (bool, CollisionInfo) {
	best := CollisionInfo{Amount: math.Inf(1)}
	bestDepth := math.Inf(1)

	test := func(axis cp.Vector) bool {
		min1, max1 := Project(vertices1, axis)
		min2, max2 := Project(vertices2, axis)

		// push1 moves shape 1 backwards along axis, push2 forwards.
		push1 := max1 - min2
		push2 := max2 - min1
		if push1 <= 0 || push2 <= 0 {
			return false
		}
		depth, amount := push1, -push1
		if push2 < push1 {
			depth, amount = push2, push2
		}
		if depth < bestDepth {
			bestDepth = depth
			best = CollisionInfo{Axis: axis, Amount: amount}
		}
		return true
	}

	for _, axis := range axes1 {
		if !test(axis) {
			return false, CollisionInfo{}
		}
	}
	for _, axis := range axes2 {
		if !test(axis) {
			return false, CollisionInfo{}
		}
	}
	if math.IsInf(bestDepth, 1) {
		return false, CollisionInfo{}
	}
	return true, best
}

// MayOverlap is the broad-phase circle test: false means the two bounding
// circles cannot touch and the narrow phase can be skipped.
func MayOverlap(center1 cp.Vector, r1 float64, center2 cp.Vector, r2 float64) bool {
	return center1.DistanceSq(center2) <= r1*r1+r2*r2+2*r1*r2
}
