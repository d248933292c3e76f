package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// CollisionSet holds every shaped entity whose tags contain Types.
type CollisionSet struct {
	Name    string
	Types   component.CollisionType
	members ecs.EntitySet
}

func NewCollisionSet(name string, types component.CollisionType) *CollisionSet {
	return &CollisionSet{Name: name, Types: types, members: make(ecs.EntitySet)}
}

func (c *CollisionSet) Matches(shape *component.CollisionShape) bool {
	return shape != nil && shape.Types().Has(c.Types)
}

func (c *CollisionSet) Has(e ecs.Entity) bool {
	return c.members.Has(e)
}

func (c *CollisionSet) Len() int {
	return c.members.Len()
}

// Entities returns the members in ascending id order.
func (c *CollisionSet) Entities() []ecs.Entity {
	return c.members.Sorted()
}

func (c *CollisionSet) consider(e ecs.Entity, shape *component.CollisionShape) {
	if c.Matches(shape) {
		c.members.Add(e)
		return
	}
	c.members.Remove(e)
}

func (c *CollisionSet) remove(e ecs.Entity) {
	c.members.Remove(e)
}

// CollisionStats counts what the last detection pass did.
type CollisionStats struct {
	// Candidates are broad phase pairs that reached the per-pair tests.
	Candidates    int
	CheapRejects  int
	NarrowTests   int
	Hits          int
	ResolvedSkips int
}

// Collider tests every member of Left against the members of Right that
// share a spatial hash cell with it.
type Collider struct {
	Name  string
	Left  *CollisionSet
	Right *CollisionSet
}

// collisionBody is the per-entity state the detection system keeps in the
// aspect.
type collisionBody struct {
	pos   *component.Position
	shape *component.CollisionShape
}

func (b *collisionBody) geometry() (verts, axes []cp.Vector) {
	p, angle := b.pos.Vec(), b.pos.Angle()
	verts = b.shape.Vertices(p, angle)
	axes = b.shape.Axes(p, angle)
	return verts, axes
}

// pairSink records narrow phase results; CollisionDetection implements it.
type pairSink interface {
	body(e ecs.Entity) (*collisionBody, bool)
	nearby(e ecs.Entity) []ecs.Entity
	touch(shapes ...*component.CollisionShape)
	stats() *CollisionStats
}

func (c *Collider) run(sink pairSink) {
	st := sink.stats()
	for _, e := range c.Left.Entities() {
		b1, ok := sink.body(e)
		if !ok || b1.shape.Disabled() {
			continue
		}
		for _, other := range sink.nearby(e) {
			if other == e || !c.Right.Has(other) {
				continue
			}
			b2, ok := sink.body(other)
			if !ok || b2.shape.Disabled() {
				continue
			}
			st.Candidates++

			// already reported this frame by an earlier collider or from
			// the other side of a symmetric rule
			if b1.shape.Fresh().Has(other) {
				continue
			}
			if b1.shape.Resolved().Has(other) || b2.shape.Resolved().Has(e) {
				st.ResolvedSkips++
				continue
			}
			if !common.MayOverlap(b1.pos.Vec(), b1.shape.MaxDistance(), b2.pos.Vec(), b2.shape.MaxDistance()) {
				st.CheapRejects++
				continue
			}

			st.NarrowTests++
			v1, a1 := b1.geometry()
			v2, a2 := b2.geometry()
			hit, info := common.Collides(v1, a1, v2, a2)
			if !hit {
				continue
			}
			st.Hits++
			b1.shape.Fresh().Set(other, info)
			b2.shape.Fresh().Set(e, info.Reverse())
			sink.touch(b1.shape, b2.shape)
		}
	}
}
