package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

var (
	flashColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	healthBackdrop = color.RGBA{R: 100, G: 0, B: 0, A: 255}
	healthFill     = color.RGBA{R: 0, G: 220, B: 0, A: 255}
)

// flashPeriodMs is how long each half of the invulnerability blink lasts.
const flashPeriodMs = 60

// RenderSystem fills collision shapes by render layer and draws a health bar
// above anything with Health.
type RenderSystem struct {
	ecs.SystemBase
	white *ebiten.Image
	verts []ebiten.Vertex
	index []uint16
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Name() string { return "render" }

func (r *RenderSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent, component.CollisionShapeComponent, component.RenderLayerComponent)
}

func (r *RenderSystem) Update(float64, map[ecs.Entity]*ecs.Aspect, ecs.EntitySet, ecs.Clock) {}

// DrawOrder returns the tracked entities in the order Draw paints them.
func (r *RenderSystem) DrawOrder() []ecs.Entity {
	w := r.World()
	if w == nil {
		return nil
	}
	entities := w.Query(r.Requires()...)
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return entities[i] < entities[j]
	})
	return entities
}

func (r *RenderSystem) Draw(screen *ebiten.Image) {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	w := r.World()
	for _, e := range r.DrawOrder() {
		pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())
		shape, _ := ecs.Get(w, e, component.CollisionShapeComponent.Kind())
		layer, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())
		if shape.Disabled() {
			continue
		}

		clr := layer.Color
		health, hasHealth := ecs.Get(w, e, component.HealthComponent.Kind())
		if hasHealth && health.InvulnerableMs > 0 && int(health.InvulnerableMs/flashPeriodMs)%2 == 0 {
			clr = flashColor
		}
		r.fill(screen, shape.Vertices(pos.Vec(), pos.Angle()), clr)

		if hasHealth && health.Max > 0 {
			r.healthBar(screen, pos, shape, health)
		}
	}
}

func (r *RenderSystem) fill(screen *ebiten.Image, verts []cp.Vector, clr color.RGBA) {
	if len(verts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(verts[0].X), float32(verts[0].Y))
	for _, v := range verts[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()

	r.verts, r.index = path.AppendVerticesAndIndicesForFilling(r.verts[:0], r.index[:0])
	cr, cg, cb, ca := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range r.verts {
		r.verts[i].SrcX, r.verts[i].SrcY = 0, 0
		r.verts[i].ColorR, r.verts[i].ColorG, r.verts[i].ColorB, r.verts[i].ColorA = cr*ca, cg*ca, cb*ca, ca
	}
	screen.DrawTriangles(r.verts, r.index, r.white, &ebiten.DrawTrianglesOptions{})
}

func (r *RenderSystem) healthBar(screen *ebiten.Image, pos *component.Position, shape *component.CollisionShape, health *component.Health) {
	const barHeight = 4
	width := float32(shape.MaxDistance() * 2)
	x := float32(pos.X()) - width/2
	y := float32(pos.Y()-shape.MaxDistance()) - barHeight - 4
	pct := float32(common.Clamp(health.Current/health.Max, 0, 1))
	vector.FillRect(screen, x, y, width, barHeight, healthBackdrop, false)
	vector.FillRect(screen, x, y, width*pct, barHeight, healthFill, false)
}
