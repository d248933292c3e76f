package component

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
)

var ErrTooFewVertices = errors.New("component: polygon needs at least 3 vertices")

type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// CollisionShape is a convex polygon attached to an entity. Geometry and tags
// are fixed at construction; only Disabled and the two collision collections
// change afterwards.
//
// World vertices and axes are cached against the last (position, angle) pair
// they were computed for.
type CollisionShape struct {
	ecs.Signal

	kind      ShapeKind
	local     []cp.Vector
	offset    cp.Vector
	types     CollisionType
	axisCount int
	maxDist   float64
	maxDistSq float64
	disabled  bool

	vertsPos   cp.Vector
	vertsAngle float64
	vertsOK    bool
	verts      []cp.Vector

	axesPos   cp.Vector
	axesAngle float64
	axesOK    bool
	axes      []cp.Vector

	fresh    FreshCollisions
	resolved ResolvedSet
}

// NewRectangle builds a w×h rectangle centered on offset. Opposite edges
// share normals, so only two axes are tested.
func NewRectangle(w, h float64, offset cp.Vector, types CollisionType) *CollisionShape {
	return newShape(ShapeRectangle, common.RectVertices(w, h), offset, types, 2)
}

// NewPolygon builds a convex polygon from local vertices, which are copied.
func NewPolygon(vertices []cp.Vector, offset cp.Vector, types CollisionType) (*CollisionShape, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("new polygon with %d vertices: %w", len(vertices), ErrTooFewVertices)
	}
	local := append([]cp.Vector(nil), vertices...)
	return newShape(ShapePolygon, local, offset, types, len(local)), nil
}

func newShape(kind ShapeKind, local []cp.Vector, offset cp.Vector, types CollisionType, axisCount int) *CollisionShape {
	s := &CollisionShape{
		kind:      kind,
		local:     local,
		offset:    offset,
		types:     types,
		axisCount: axisCount,
		maxDistSq: common.MaxDistanceSq(local, offset),
	}
	s.maxDist = math.Sqrt(s.maxDistSq)
	s.fresh.owner = &s.Signal
	s.resolved.owner = &s.Signal
	return s
}

func (s *CollisionShape) Kind() ShapeKind {
	return s.kind
}

func (s *CollisionShape) Types() CollisionType {
	return s.types
}

func (s *CollisionShape) Offset() cp.Vector {
	return s.offset
}

// LocalVertices returns a copy of the construction vertices.
func (s *CollisionShape) LocalVertices() []cp.Vector {
	return append([]cp.Vector(nil), s.local...)
}

// MaxDistance is the radius of the smallest circle around the entity
// position that contains the shape at any angle.
func (s *CollisionShape) MaxDistance() float64 {
	return s.maxDist
}

func (s *CollisionShape) MaxDistanceSq() float64 {
	return s.maxDistSq
}

func (s *CollisionShape) Disabled() bool {
	return s.disabled
}

func (s *CollisionShape) SetDisabled(disabled bool) {
	if s.disabled == disabled {
		return
	}
	s.disabled = disabled
	s.Dirty()
}

// Vertices returns world-space vertices for the given entity position and
// angle. The slice is owned by the shape and valid until the next call with
// a different pair.
func (s *CollisionShape) Vertices(pos cp.Vector, angle float64) []cp.Vector {
	if s.vertsOK && s.vertsPos == pos && s.vertsAngle == angle {
		return s.verts
	}
	s.verts = common.TransformVertices(s.verts, s.local, s.offset, pos, angle)
	s.vertsPos, s.vertsAngle, s.vertsOK = pos, angle, true
	return s.verts
}

// Axes returns the world-space edge normals used by the separating axis test.
func (s *CollisionShape) Axes(pos cp.Vector, angle float64) []cp.Vector {
	if s.axesOK && s.axesPos == pos && s.axesAngle == angle {
		return s.axes
	}
	s.axes = common.EdgeNormals(s.axes, s.Vertices(pos, angle), s.axisCount)
	s.axesPos, s.axesAngle, s.axesOK = pos, angle, true
	return s.axes
}

// Fresh holds the collisions detected this frame.
func (s *CollisionShape) Fresh() *FreshCollisions {
	return &s.fresh
}

// Resolved holds entities whose collision with this shape was already
// handled. It lives as long as the shape.
func (s *CollisionShape) Resolved() *ResolvedSet {
	return &s.resolved
}

var CollisionShapeComponent = ecs.NewComponent[CollisionShape]("CollisionShape")
