package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

var (
	debugShapeColor    = color.RGBA{R: 80, G: 220, B: 80, A: 220}
	debugContactColor  = color.RGBA{R: 255, G: 60, B: 60, A: 240}
	debugDisabledColor = color.RGBA{R: 120, G: 120, B: 120, A: 160}
	debugMTVColor      = color.RGBA{R: 255, G: 200, B: 0, A: 240}
	debugTextColor     = color.White
)

// CollisionDebugSystem outlines every shape, highlights shapes with contacts
// and prints the detection counters. It keeps running while the game is
// paused.
type CollisionDebugSystem struct {
	ecs.SystemBase
	detection *CollisionDetection
	face      text.Face
	visible   bool
	stats     CollisionStats
	frame     uint64
}

func NewCollisionDebugSystem(detection *CollisionDetection) *CollisionDebugSystem {
	return &CollisionDebugSystem{
		detection: detection,
		face:      text.NewGoXFace(basicfont.Face7x13),
		visible:   true,
	}
}

func (s *CollisionDebugSystem) Name() string { return "collision_debug" }

func (s *CollisionDebugSystem) Debug() bool { return true }

func (s *CollisionDebugSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent, component.CollisionShapeComponent)
}

func (s *CollisionDebugSystem) OnEnabled(aspects map[ecs.Entity]*ecs.Aspect) {
	s.visible = true
	s.World().Logger().Debug("collision overlay shown", zap.Int("shapes", len(aspects)))
}

func (s *CollisionDebugSystem) OnDisabled(map[ecs.Entity]*ecs.Aspect) {
	s.visible = false
	s.World().Logger().Debug("collision overlay hidden")
}

func (s *CollisionDebugSystem) Visible() bool {
	return s.visible
}

func (s *CollisionDebugSystem) Update(_ float64, _ map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, clock ecs.Clock) {
	if s.detection != nil {
		s.stats = s.detection.Stats()
	}
	s.frame = clock.Frame
}

func (s *CollisionDebugSystem) Draw(screen *ebiten.Image) {
	if !s.visible {
		return
	}
	w := s.World()
	for _, e := range w.Query(s.Requires()...) {
		pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())
		shape, _ := ecs.Get(w, e, component.CollisionShapeComponent.Kind())

		clr := debugShapeColor
		switch {
		case shape.Disabled():
			clr = debugDisabledColor
		case shape.Fresh().Len() > 0:
			clr = debugContactColor
		}
		verts := shape.Vertices(pos.Vec(), pos.Angle())
		for i := range verts {
			a, b := verts[i], verts[(i+1)%len(verts)]
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, false)
		}

		for _, other := range shape.Fresh().Entities() {
			info, _ := shape.Fresh().Get(other)
			end := pos.Vec().Add(info.MTV())
			vector.StrokeLine(screen, float32(pos.X()), float32(pos.Y()), float32(end.X), float32(end.Y), 2, debugMTVColor, true)
		}
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 15
	op.ColorScale.ScaleWithColor(debugTextColor)
	text.Draw(screen, s.summary(), s.face, op)
}

func (s *CollisionDebugSystem) summary() string {
	return fmt.Sprintf("frame %d\ncandidates %d\ncheap rejects %d\nnarrow tests %d\nhits %d\nresolved skips %d",
		s.frame, s.stats.Candidates, s.stats.CheapRejects, s.stats.NarrowTests, s.stats.Hits, s.stats.ResolvedSkips)
}
