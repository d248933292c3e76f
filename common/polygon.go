package common

import "github.com/jakecoffman/cp"

// RectVertices returns the four corners of a w×h rectangle centered on the
// origin, wound counter-clockwise.
func RectVertices(w, h float64) []cp.Vector {
	hw, hh := w/2, h/2
	return []cp.Vector{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
}

// TransformVertices writes local+offset vertices rotated by angle around the
// origin and translated by pos into dst, which is grown as needed.
func TransformVertices(dst, local []cp.Vector, offset, pos cp.Vector, angle float64) []cp.Vector {
	dst = dst[:0]
	rot := cp.ForAngle(angle)
	for _, v := range local {
		dst = append(dst, pos.Add(v.Add(offset).Rotate(rot)))
	}
	return dst
}

// EdgeNormals writes the unit normal of the first n edges of a closed polygon
// into dst. Pass n = len(vertices) for every edge.
func EdgeNormals(dst, vertices []cp.Vector, n int) []cp.Vector {
	dst = dst[:0]
	count := len(vertices)
	if n > count {
		n = count
	}
	for i := 0; i < n; i++ {
		edge := vertices[(i+1)%count].Sub(vertices[i])
		dst = append(dst, edge.Perp().Normalize())
	}
	return dst
}

// Project returns the scalar range covered by vertices along axis.
func Project(vertices []cp.Vector, axis cp.Vector) (min, max float64) {
	if len(vertices) == 0 {
		return 0, 0
	}
	min = vertices[0].Dot(axis)
	max = min
	for _, v := range vertices[1:] {
		p := v.Dot(axis)
		if p < min {
			min = p
		} else if p > max {
			max = p
		}
	}
	return min, max
}

// MaxDistanceSq is the squared distance of the farthest offset vertex from
// the origin.
func MaxDistanceSq(local []cp.Vector, offset cp.Vector) float64 {
	var best float64
	for _, v := range local {
		if d := v.Add(offset).LengthSq(); d > best {
			best = d
		}
	}
	return best
}
