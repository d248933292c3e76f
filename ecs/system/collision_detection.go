package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"go.uber.org/zap"
)

// ColliderRule declares one row of the collision matrix.
type ColliderRule struct {
	Name  string
	Left  component.CollisionType
	Right component.CollisionType
}

// DefaultCollisionMatrix is the game's collision matrix in run order.
func DefaultCollisionMatrix() []ColliderRule {
	return []ColliderRule{
		{Name: "mobile-solid", Left: component.CollisionMobile | component.CollisionSolid, Right: component.CollisionSolid},
		{Name: "attack-vulnerable", Left: component.CollisionAttack, Right: component.CollisionVulnerable},
		{Name: "shield-attack", Left: component.CollisionShield, Right: component.CollisionAttack},
		{Name: "region-mobile", Left: component.CollisionRegion, Right: component.CollisionMobile},
		{Name: "projectile-wall", Left: component.CollisionProjectile, Right: component.CollisionWall},
		{Name: "collector-item", Left: component.CollisionCollector, Right: component.CollisionItem},
	}
}

// CollisionDetection runs the collision matrix once per frame and writes the
// results into each shape's Fresh collisions. It reports contacts only;
// reacting to them is left to the systems that run after it.
type CollisionDetection struct {
	ecs.SystemBase
	hash      *SpatialHash
	colliders []*Collider
	sets      []*CollisionSet

	touched []*component.CollisionShape
	last    CollisionStats
	scratch ecs.EntitySet
}

// NewCollisionDetection builds the colliders for rules. Rules sharing a tag
// list share one CollisionSet.
func NewCollisionDetection(hash *SpatialHash, rules []ColliderRule) *CollisionDetection {
	s := &CollisionDetection{hash: hash, scratch: make(ecs.EntitySet)}
	for _, r := range rules {
		s.colliders = append(s.colliders, &Collider{
			Name:  r.Name,
			Left:  s.set(r.Left),
			Right: s.set(r.Right),
		})
	}
	return s
}

func (s *CollisionDetection) set(types component.CollisionType) *CollisionSet {
	for _, set := range s.sets {
		if set.Types == types {
			return set
		}
	}
	set := NewCollisionSet(types.String(), types)
	s.sets = append(s.sets, set)
	return set
}

func (s *CollisionDetection) Name() string { return "collision_detection" }

func (s *CollisionDetection) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent, component.CollisionShapeComponent)
}

func (s *CollisionDetection) Colliders() []*Collider {
	return s.colliders
}

// Stats returns the counters of the last pass.
func (s *CollisionDetection) Stats() CollisionStats {
	return s.last
}

func (s *CollisionDetection) OnAdd(a *ecs.Aspect) {
	pos, _ := ecs.Read(a, component.PositionComponent.Kind())
	shape, _ := ecs.Read(a, component.CollisionShapeComponent.Kind())
	a.State = &collisionBody{pos: pos, shape: shape}
	for _, set := range s.sets {
		set.consider(a.Entity(), shape)
	}
}

func (s *CollisionDetection) OnRemove(a *ecs.Aspect) {
	for _, set := range s.sets {
		set.remove(a.Entity())
	}
}

func (s *CollisionDetection) OnClear() {
	s.touched = s.touched[:0]
	s.last = CollisionStats{}
}

func (s *CollisionDetection) Update(_ float64, _ map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	for _, shape := range s.touched {
		shape.Fresh().Clear()
	}
	s.touched = s.touched[:0]

	s.last = CollisionStats{}
	for _, c := range s.colliders {
		c.run(s)
	}

	if s.last.Hits > 0 && s.World() != nil {
		if ce := s.World().Logger().Check(zap.DebugLevel, "collisions detected"); ce != nil {
			ce.Write(
				zap.Int("candidates", s.last.Candidates),
				zap.Int("cheap_rejects", s.last.CheapRejects),
				zap.Int("narrow_tests", s.last.NarrowTests),
				zap.Int("hits", s.last.Hits),
			)
		}
	}
}

func (s *CollisionDetection) body(e ecs.Entity) (*collisionBody, bool) {
	a, ok := s.Aspect(e)
	if !ok {
		return nil, false
	}
	b, ok := a.State.(*collisionBody)
	return b, ok && b.pos != nil && b.shape != nil
}

func (s *CollisionDetection) nearby(e ecs.Entity) []ecs.Entity {
	s.scratch.Clear()
	s.hash.Nearby(e, s.scratch)
	return s.scratch.Sorted()
}

func (s *CollisionDetection) touch(shapes ...*component.CollisionShape) {
	s.touched = append(s.touched, shapes...)
}

func (s *CollisionDetection) stats() *CollisionStats {
	return &s.last
}
