package common

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testShape struct {
	local  []cp.Vector
	pos    cp.Vector
	angle  float64
	nAxes  int
	radius float64
}

func rect(w, h float64, pos cp.Vector, angle float64) testShape {
	local := RectVertices(w, h)
	return testShape{local: local, pos: pos, angle: angle, nAxes: 2, radius: math.Sqrt(MaxDistanceSq(local, cp.Vector{}))}
}

func (s testShape) world() ([]cp.Vector, []cp.Vector) {
	verts := TransformVertices(nil, s.local, cp.Vector{}, s.pos, s.angle)
	n := s.nAxes
	if n == 0 {
		n = len(verts)
	}
	return verts, EdgeNormals(nil, verts, n)
}

func collide(a, b testShape) (bool, CollisionInfo) {
	va, aa := a.world()
	vb, ab := b.world()
	return Collides(va, aa, vb, ab)
}

func TestCollidesRectangles(t *testing.T) {
	cases := []struct {
		name    string
		a, b    testShape
		hit     bool
		depth   float64
		xAxis   bool
		mtvSign float64 // sign of MTV.X applied to a
	}{
		{"half_overlap_x", rect(64, 64, cp.Vector{}, 0), rect(64, 64, cp.Vector{X: 32}, 0), true, 32, true, -1},
		{"other_side", rect(64, 64, cp.Vector{X: 40}, 0), rect(64, 64, cp.Vector{}, 0), true, 24, true, 1},
		{"separated", rect(64, 64, cp.Vector{}, 0), rect(64, 64, cp.Vector{X: 100}, 0), false, 0, false, 0},
		{"edges_touching", rect(64, 64, cp.Vector{}, 0), rect(64, 64, cp.Vector{X: 64}, 0), false, 0, false, 0},
		{"vertical", rect(64, 64, cp.Vector{}, 0), rect(64, 64, cp.Vector{X: 4, Y: 60}, 0), true, 4, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, info := collide(c.a, c.b)
			require.Equal(t, c.hit, hit)
			if !hit {
				return
			}
			assert.InDelta(t, c.depth, math.Abs(info.Amount), 1e-9)
			assert.InDelta(t, 1, info.Axis.Length(), 1e-9)
			if c.xAxis {
				assert.InDelta(t, 1, math.Abs(info.Axis.X), 1e-9)
				assert.InDelta(t, c.mtvSign*c.depth, info.MTV().X, 1e-9)
			} else {
				assert.InDelta(t, 1, math.Abs(info.Axis.Y), 1e-9)
			}
		})
	}
}

func TestCollisionResolutionSeparates(t *testing.T) {
	a := rect(64, 64, cp.Vector{}, 0)
	b := rect(64, 64, cp.Vector{X: 32}, 0)

	hit, info := collide(a, b)
	require.True(t, hit)

	a.pos = a.pos.Add(info.MTV())
	assert.InDelta(t, -32, a.pos.X, 1e-9)

	hit, _ = collide(a, b)
	assert.False(t, hit, "shapes should only touch after resolution")
}

func TestCollisionInfoReverse(t *testing.T) {
	a := rect(40, 20, cp.Vector{}, 0.3)
	b := rect(30, 30, cp.Vector{X: 10, Y: 5}, 1.1)

	hitAB, ab := collide(a, b)
	hitBA, ba := collide(b, a)
	require.True(t, hitAB)
	require.True(t, hitBA)

	rev := ab.Reverse()
	assert.Equal(t, ab.Axis, rev.Axis)
	assert.InDelta(t, -ab.Amount, rev.Amount, 1e-12)
	assert.InDelta(t, math.Abs(ab.Amount), math.Abs(ba.Amount), 1e-9)
	assert.InDelta(t, ab.MTV().X, -ba.MTV().X, 1e-9)
	assert.InDelta(t, ab.MTV().Y, -ba.MTV().Y, 1e-9)
}

func TestCollidesContainment(t *testing.T) {
	outer := rect(100, 100, cp.Vector{}, 0)
	inner := rect(10, 10, cp.Vector{X: 30}, 0)

	hit, info := collide(inner, outer)
	require.True(t, hit)
	// shortest way out of the big box is through its right edge: 50-(30-5)
	assert.InDelta(t, 25, math.Abs(info.Amount), 1e-9)
	assert.Greater(t, info.MTV().X, 0.0)
}

func TestCollidesTriangle(t *testing.T) {
	tri := testShape{
		local: []cp.Vector{{X: 0, Y: -20}, {X: 20, Y: 20}, {X: -20, Y: 20}},
		pos:   cp.Vector{X: 0, Y: 0},
	}
	box := rect(20, 20, cp.Vector{X: 25, Y: -15}, 0)

	hit, _ := collide(tri, box)
	assert.False(t, hit, "box sits beside the slanted edge")

	box.pos = cp.Vector{X: 10, Y: 10}
	hit, _ = collide(tri, box)
	assert.True(t, hit)
}

func TestRectangleNeedsTwoAxes(t *testing.T) {
	verts := TransformVertices(nil, RectVertices(10, 20), cp.Vector{}, cp.Vector{}, 0.7)
	all := EdgeNormals(nil, verts, len(verts))
	two := EdgeNormals(nil, verts, 2)

	require.Len(t, all, 4)
	require.Len(t, two, 2)
	// opposite edges share a normal up to sign
	assert.InDelta(t, 0, all[0].Cross(all[2]), 1e-9)
	assert.InDelta(t, 0, all[1].Cross(all[3]), 1e-9)
}

func TestMayOverlapNeverRejectsRealHits(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		a := rect(5+rng.Float64()*60, 5+rng.Float64()*60, cp.Vector{X: rng.Float64() * 100, Y: rng.Float64() * 100}, rng.Float64()*math.Pi)
		b := rect(5+rng.Float64()*60, 5+rng.Float64()*60, cp.Vector{X: rng.Float64() * 100, Y: rng.Float64() * 100}, rng.Float64()*math.Pi)

		hit, _ := collide(a, b)
		if hit {
			require.True(t, MayOverlap(a.pos, a.radius, b.pos, b.radius), "iteration %d", i)
		}
	}
}

func TestMayOverlapRejectsFarPairs(t *testing.T) {
	assert.False(t, MayOverlap(cp.Vector{}, 10, cp.Vector{X: 30}, 10))
	assert.True(t, MayOverlap(cp.Vector{}, 10, cp.Vector{X: 20}, 10))
}
