package system_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collisionWorld struct {
	*ecs.World
	hash      *system.SpatialHash
	detection *system.CollisionDetection
	now       float64
}

func newCollisionWorld(t *testing.T, cellSize float64, extra ...ecs.System) *collisionWorld {
	t.Helper()
	w := ecs.NewWorld()
	hash := system.NewSpatialHash(cellSize)
	detection := system.NewCollisionDetection(hash, system.DefaultCollisionMatrix())
	require.NoError(t, w.AddSystem(system.PrioritySpatialHash, hash))
	require.NoError(t, w.AddSystem(system.PriorityCollisionDetection, detection))
	for i, s := range extra {
		require.NoError(t, w.AddSystem(system.PriorityCollisionMovement+i, s))
	}
	return &collisionWorld{World: w, hash: hash, detection: detection}
}

func (cw *collisionWorld) spawn(t *testing.T, x, y float64, shape *component.CollisionShape) ecs.Entity {
	t.Helper()
	e := cw.AddEntity()
	require.NoError(t, ecs.Add(cw.World, e, component.PositionComponent.Kind(), component.NewPosition(x, y)))
	if shape != nil {
		require.NoError(t, ecs.Add(cw.World, e, component.CollisionShapeComponent.Kind(), shape))
	}
	return e
}

func (cw *collisionWorld) step() {
	cw.now += 16
	cw.Update(16, 16, cw.now)
	cw.FinishUpdate()
}

func shapeOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.CollisionShape {
	t.Helper()
	shape, ok := ecs.Get(w, e, component.CollisionShapeComponent.Kind())
	require.True(t, ok)
	return shape
}

func positionOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Position {
	t.Helper()
	pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	require.True(t, ok)
	return pos
}

func TestMobileSolidScenario(t *testing.T) {
	cw := newCollisionWorld(t, 128, system.NewCollisionMovementSystem())
	mover := cw.spawn(t, 0, 0, component.NewRectangle(64, 64, cp.Vector{}, component.CollisionSolid|component.CollisionMobile))
	wall := cw.spawn(t, 32, 0, component.NewRectangle(64, 64, cp.Vector{}, component.CollisionSolid))

	cw.step()

	info, ok := shapeOf(t, cw.World, mover).Fresh().Get(wall)
	require.True(t, ok)
	assert.InDelta(t, 1, info.Axis.X*info.Axis.X, 1e-9, "resolved along the X axis")
	assert.InDelta(t, 32, abs(info.Amount), 1e-9)
	mtv := info.MTV()
	assert.InDelta(t, -32, mtv.X, 1e-9)
	assert.InDelta(t, 0, mtv.Y, 1e-9)

	back, ok := shapeOf(t, cw.World, wall).Fresh().Get(mover)
	require.True(t, ok)
	assert.InDelta(t, 32, back.MTV().X, 1e-9)

	pos := positionOf(t, cw.World, mover)
	assert.InDelta(t, -32, pos.X(), 1e-9, "pushed out by the MTV")
	assert.InDelta(t, 0, pos.Y(), 1e-9)
	assert.Equal(t, 32.0, positionOf(t, cw.World, wall).X(), "static solids do not move")

	cw.step()
	assert.Zero(t, shapeOf(t, cw.World, mover).Fresh().Len(), "touching edges are not a collision")
	assert.Zero(t, shapeOf(t, cw.World, wall).Fresh().Len())
}

func TestCollisionSymmetry(t *testing.T) {
	cw := newCollisionWorld(t, 64)
	rng := rand.New(rand.NewPCG(3, 5))

	var ents []ecs.Entity
	for i := 0; i < 40; i++ {
		types := component.CollisionSolid
		if i%2 == 0 {
			types |= component.CollisionMobile
		}
		shape := component.NewRectangle(10+rng.Float64()*40, 10+rng.Float64()*40, cp.Vector{}, types)
		ents = append(ents, cw.spawn(t, rng.Float64()*300, rng.Float64()*300, shape))
		positionOf(t, cw.World, ents[i]).SetAngle(rng.Float64())
	}
	cw.step()

	require.Positive(t, cw.detection.Stats().Hits)
	pairs := 0
	for _, a := range ents {
		fresh := shapeOf(t, cw.World, a).Fresh()
		for _, b := range fresh.Entities() {
			ab, _ := fresh.Get(b)
			ba, ok := shapeOf(t, cw.World, b).Fresh().Get(a)
			require.True(t, ok, "%v sees %v but not the reverse", a, b)
			assert.InDelta(t, -ab.MTV().X, ba.MTV().X, 1e-9)
			assert.InDelta(t, -ab.MTV().Y, ba.MTV().Y, 1e-9)
			assert.InDelta(t, -ab.Amount, ba.Amount, 1e-9)
			pairs++
		}
	}
	assert.Equal(t, 2*cw.detection.Stats().Hits, pairs)
}

func TestCheapCheckRejectsDistantPairs(t *testing.T) {
	// one huge cell so both shapes are broad phase candidates
	cw := newCollisionWorld(t, 10000)
	cw.spawn(t, 0, 0, component.NewRectangle(10, 10, cp.Vector{}, component.CollisionSolid|component.CollisionMobile))
	cw.spawn(t, 100, 0, component.NewRectangle(10, 10, cp.Vector{}, component.CollisionSolid))

	cw.step()

	stats := cw.detection.Stats()
	assert.Equal(t, 1, stats.Candidates)
	assert.Equal(t, 1, stats.CheapRejects)
	assert.Zero(t, stats.NarrowTests)
	assert.Zero(t, stats.Hits)
}

func TestCheapCheckPassesOverlappingCircles(t *testing.T) {
	cw := newCollisionWorld(t, 10000)
	cw.spawn(t, 0, 0, component.NewRectangle(10, 10, cp.Vector{}, component.CollisionSolid|component.CollisionMobile))
	// a diamond whose bounding circle reaches the box while the X axis
	// still separates them
	diamond := cw.spawn(t, 12.5, 0, component.NewRectangle(10, 10, cp.Vector{}, component.CollisionSolid))
	positionOf(t, cw.World, diamond).SetAngle(math.Pi / 4)

	cw.step()

	stats := cw.detection.Stats()
	assert.Zero(t, stats.CheapRejects)
	assert.Equal(t, 1, stats.NarrowTests)
	assert.Zero(t, stats.Hits)
}

func TestDisabledShapesDoNotCollide(t *testing.T) {
	cw := newCollisionWorld(t, 128)
	a := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionSolid|component.CollisionMobile))
	b := cw.spawn(t, 5, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionSolid))

	shapeOf(t, cw.World, b).SetDisabled(true)
	cw.step()
	assert.Zero(t, shapeOf(t, cw.World, a).Fresh().Len())
	assert.Zero(t, cw.detection.Stats().Candidates)

	shapeOf(t, cw.World, b).SetDisabled(false)
	cw.step()
	assert.True(t, shapeOf(t, cw.World, a).Fresh().Has(b))
}

func TestFreshCollisionsClearedNextFrame(t *testing.T) {
	cw := newCollisionWorld(t, 32)
	a := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionSolid|component.CollisionMobile))
	b := cw.spawn(t, 5, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionSolid))

	cw.step()
	require.True(t, shapeOf(t, cw.World, a).Fresh().Has(b))

	positionOf(t, cw.World, a).Set(cp.Vector{X: 500, Y: 500})
	cw.step()
	assert.False(t, shapeOf(t, cw.World, a).Fresh().Has(b))
	assert.False(t, shapeOf(t, cw.World, b).Fresh().Has(a))
}

func TestDestroyedShapeLeavesCollisionSets(t *testing.T) {
	cw := newCollisionWorld(t, 64)
	a := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionSolid|component.CollisionMobile))
	b := cw.spawn(t, 5, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionSolid))
	cw.step()

	cw.RemoveEntity(b)
	cw.FinishUpdate()
	cw.step()
	assert.Zero(t, shapeOf(t, cw.World, a).Fresh().Len())

	for _, c := range cw.detection.Colliders() {
		assert.False(t, c.Left.Has(b), c.Name)
		assert.False(t, c.Right.Has(b), c.Name)
	}
	assert.Empty(t, cw.hash.CellsOf(b))
}

func TestCollisionSetsShareTagLists(t *testing.T) {
	detection := system.NewCollisionDetection(system.NewSpatialHash(64), system.DefaultCollisionMatrix())
	byName := map[string]*system.Collider{}
	for _, c := range detection.Colliders() {
		byName[c.Name] = c
	}
	require.Len(t, byName, 6)
	assert.Same(t, byName["attack-vulnerable"].Left, byName["shield-attack"].Right)
	assert.Equal(t, component.CollisionSolid, byName["mobile-solid"].Right.Types)
	assert.Equal(t, component.CollisionMobile, byName["region-mobile"].Right.Types)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
