package tessellate

import (
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
)

// earClip triangulates a simple (non-self-intersecting), single-ring
// 2D polygon by the standard ear-clipping method: repeatedly find a
// convex vertex whose clipping triangle contains no other remaining
// vertex, emit it, and remove it from the ring. O(n^2) in the vertex
// count, adequate for the chord-subdivided boundaries this package
// produces.
func earClip(poly []gmath.Vec2) ([][3]int, error) {
	n := len(poly)
	if n < 3 {
		return nil, kerrors.Wrap("tessellate.earClip", kerrors.ErrGeometryError, errDegeneratePolygon{})
	}
	if n == 3 {
		return [][3]int{{0, 1, 2}}, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	ccw := signedArea(poly, idx) > 0

	var tris [][3]int
	guard := 0
	for len(idx) > 3 {
		guard++
		if guard > n*n+8 {
			return nil, kerrors.Wrap("tessellate.earClip", kerrors.ErrGeometryError, errNoEar{})
		}
		m := len(idx)
		found := false
		for i := 0; i < m; i++ {
			ip, ic, in := idx[(i-1+m)%m], idx[i], idx[(i+1)%m]
			a, b, c := poly[ip], poly[ic], poly[in]
			if isConvex(a, b, c, ccw) && noneInside(poly, idx, ip, ic, in, a, b, c) {
				tris = append(tris, [3]int{ip, ic, in})
				idx = append(idx[:i], idx[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			// Degenerate/near-collinear boundary: fall back to a
			// simple fan rather than failing the whole tessellation.
			for i := 1; i < m-1; i++ {
				tris = append(tris, [3]int{idx[0], idx[i], idx[i+1]})
			}
			idx = nil
			break
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris, nil
}

type errDegeneratePolygon struct{}

func (errDegeneratePolygon) Error() string { return "polygon has fewer than 3 vertices" }

type errNoEar struct{}

func (errNoEar) Error() string { return "ear-clipping made no progress" }

func signedArea(poly []gmath.Vec2, idx []int) float64 {
	var area float64
	n := len(idx)
	for i := 0; i < n; i++ {
		a, b := poly[idx[i]], poly[idx[(i+1)%n]]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

func isConvex(a, b, c gmath.Vec2, ccw bool) bool {
	cross := b.Sub(a).Cross(c.Sub(b))
	if ccw {
		return cross > 0
	}
	return cross < 0
}

func noneInside(poly []gmath.Vec2, idx []int, ip, ic, in int, a, b, c gmath.Vec2) bool {
	for _, j := range idx {
		if j == ip || j == ic || j == in {
			continue
		}
		if pointInTriangle(poly[j], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c gmath.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
