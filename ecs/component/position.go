package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
)

// Position is an entity's world location and rotation in radians. The
// setters mark the component dirty only when the value actually changes.
type Position struct {
	ecs.Signal
	vec   cp.Vector
	angle float64
}

func NewPosition(x, y float64) *Position {
	return &Position{vec: cp.Vector{X: x, Y: y}}
}

func (p *Position) Vec() cp.Vector {
	return p.vec
}

func (p *Position) X() float64 {
	return p.vec.X
}

func (p *Position) Y() float64 {
	return p.vec.Y
}

func (p *Position) Angle() float64 {
	return p.angle
}

func (p *Position) Set(v cp.Vector) {
	if p.vec == v {
		return
	}
	p.vec = v
	p.Dirty()
}

// Move translates the position by d.
func (p *Position) Move(d cp.Vector) {
	if d.X == 0 && d.Y == 0 {
		return
	}
	p.Set(p.vec.Add(d))
}

func (p *Position) SetAngle(angle float64) {
	if p.angle == angle {
		return
	}
	p.angle = angle
	p.Dirty()
}

var PositionComponent = ecs.NewComponent[Position]("Position")
