package system

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

const DefaultCellSize = 128.0

// CellKey packs a pair of cell coordinates into one map key.
type CellKey int64

func MakeCellKey(cx, cy int) CellKey {
	return CellKey(int64(int32(cx))<<32 | int64(uint32(int32(cy))))
}

func (k CellKey) Coords() (cx, cy int) {
	return int(int32(k >> 32)), int(int32(uint32(k)))
}

// SpatialHash buckets positioned entities into a uniform grid. An entity
// without a CollisionShape occupies the cell of its position; a shaped entity
// occupies every cell its bounding box (position ± max vertex distance)
// overlaps. Entities are only re-bucketed when Position or CollisionShape
// signals dirty.
type SpatialHash struct {
	ecs.SystemBase
	cellSize float64
	grid     map[CellKey]ecs.EntitySet
	cells    map[ecs.Entity][]CellKey
}

func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialHash{
		cellSize: cellSize,
		grid:     make(map[CellKey]ecs.EntitySet),
		cells:    make(map[ecs.Entity][]CellKey),
	}
}

func (s *SpatialHash) Name() string { return "spatial_hash" }

func (s *SpatialHash) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent)
}

func (s *SpatialHash) Watches() []ecs.ComponentID {
	return ecs.Kinds(component.PositionComponent, component.CollisionShapeComponent)
}

func (s *SpatialHash) CellSize() float64 {
	return s.cellSize
}

// Grid exposes the cell index for the collision broad phase. Callers must not
// modify it.
func (s *SpatialHash) Grid() map[CellKey]ecs.EntitySet {
	return s.grid
}

// CellsOf returns the cells e currently occupies.
func (s *SpatialHash) CellsOf(e ecs.Entity) []CellKey {
	return slices.Clone(s.cells[e])
}

// KeyAt returns the cell containing a world point.
func (s *SpatialHash) KeyAt(v cp.Vector) CellKey {
	return MakeCellKey(common.CellCoord(v.X, s.cellSize), common.CellCoord(v.Y, s.cellSize))
}

// Nearby adds every entity sharing a cell with e to out, e included.
func (s *SpatialHash) Nearby(e ecs.Entity, out ecs.EntitySet) {
	for _, key := range s.cells[e] {
		for other := range s.grid[key] {
			out.Add(other)
		}
	}
}

func (s *SpatialHash) OnAdd(a *ecs.Aspect) {
	s.place(a)
}

func (s *SpatialHash) OnRemove(a *ecs.Aspect) {
	s.evict(a.Entity())
}

func (s *SpatialHash) OnClear() {
	clear(s.grid)
	clear(s.cells)
}

func (s *SpatialHash) Update(_ float64, aspects map[ecs.Entity]*ecs.Aspect, dirty ecs.EntitySet, _ ecs.Clock) {
	for e := range dirty {
		if a, ok := aspects[e]; ok {
			s.place(a)
		}
	}
}

func (s *SpatialHash) cellsFor(a *ecs.Aspect, dst []CellKey) []CellKey {
	dst = dst[:0]
	pos, ok := ecs.Read(a, component.PositionComponent.Kind())
	if !ok {
		return dst
	}
	shape, ok := ecs.Read(a, component.CollisionShapeComponent.Kind())
	if !ok {
		return append(dst, s.KeyAt(pos.Vec()))
	}

	bb := cp.NewBBForCircle(pos.Vec(), shape.MaxDistance())
	minX, maxX := common.CellCoord(bb.L, s.cellSize), common.CellCoord(bb.R, s.cellSize)
	minY, maxY := common.CellCoord(bb.B, s.cellSize), common.CellCoord(bb.T, s.cellSize)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			dst = append(dst, MakeCellKey(cx, cy))
		}
	}
	return dst
}

// place moves e out of cells it left before adding it to cells it entered.
func (s *SpatialHash) place(a *ecs.Aspect) {
	e := a.Entity()
	old := s.cells[e]
	next := s.cellsFor(a, nil)

	for _, key := range old {
		if slices.Contains(next, key) {
			continue
		}
		s.leave(e, key)
	}
	for _, key := range next {
		if slices.Contains(old, key) {
			continue
		}
		set, ok := s.grid[key]
		if !ok {
			set = make(ecs.EntitySet)
			s.grid[key] = set
		}
		set.Add(e)
	}
	s.cells[e] = next
}

func (s *SpatialHash) evict(e ecs.Entity) {
	for _, key := range s.cells[e] {
		s.leave(e, key)
	}
	delete(s.cells, e)
}

func (s *SpatialHash) leave(e ecs.Entity, key CellKey) {
	set := s.grid[key]
	set.Remove(e)
	if set.Len() == 0 {
		delete(s.grid, key)
	}
}
