package common

import "math"

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// CellCoord discretizes a world coordinate into a grid cell index.
func CellCoord(v, cellSize float64) int {
	return int(math.Floor(v / cellSize))
}
