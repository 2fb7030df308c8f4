package operations

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// This file implements Boolean combination by the classic BSP-tree
// polygon-clip technique (Naylor, Thibault & Wallace 1990; popularized
// in the public-domain csg.js/Constructive Solid Geometry libraries):
// each solid's boundary is a set of planar convex polygons, partitioned
// into a binary space partition tree; union/subtract/intersect reduce
// to a fixed clipTo/invert sequence over two trees. It operates purely
// on planar convex polygons, so no analytic surface needs to survive
// the cut — the bodies feeding it have already been tessellated to
// triangles upstream, and the result is rebuilt into a B-Rep body by
// the caller.

const bspEpsilon = 1e-9

type bspVertex struct {
	pos    gmath.Vec3
	normal gmath.Vec3
}

func lerpVertex(a, b bspVertex, t float64) bspVertex {
	return bspVertex{pos: a.pos.Lerp(b.pos, t), normal: a.normal.Lerp(b.normal, t)}
}

// bspPolygon is a convex planar polygon carrying the originating body's
// face normal on every vertex, preserved through every split so the
// rebuilt faces keep correct orientation.
type bspPolygon struct {
	verts []bspVertex
	plane bspPlane
}

func newBSPPolygon(verts []bspVertex) bspPolygon {
	return bspPolygon{verts: verts, plane: planeFromPoints(verts[0].pos, verts[1].pos, verts[2].pos)}
}

type bspPlane struct {
	normal gmath.Vec3
	w      float64 // normal . point = w for any point on the plane
}

func planeFromPoints(a, b, c gmath.Vec3) bspPlane {
	n, _ := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return bspPlane{normal: n, w: n.Dot(a)}
}

func (p bspPlane) flip() bspPlane { return bspPlane{normal: p.normal.Neg(), w: -p.w} }

const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// classify buckets a polygon against this plane into front/back/
// coplanar/spanning classes, the decision the split below acts on.
func (p bspPlane) classify(poly bspPolygon) int {
	total := coplanar
	types := make([]int, len(poly.verts))
	for i, v := range poly.verts {
		t := p.normal.Dot(v.pos) - p.w
		switch {
		case t < -bspEpsilon:
			types[i] = back
		case t > bspEpsilon:
			types[i] = front
		default:
			types[i] = coplanar
		}
		total |= types[i]
	}
	return total
}

// split partitions poly against the plane into up to four lists:
// coplanar polygons facing the same way as the plane, coplanar facing
// opposite, strictly in front, and strictly behind.
func (p bspPlane) split(poly bspPolygon, coF, coB, f, b *[]bspPolygon) {
	types := make([]int, len(poly.verts))
	total := coplanar
	for i, v := range poly.verts {
		t := p.normal.Dot(v.pos) - p.w
		switch {
		case t < -bspEpsilon:
			types[i] = back
		case t > bspEpsilon:
			types[i] = front
		default:
			types[i] = coplanar
		}
		total |= types[i]
	}
	switch total {
	case coplanar:
		if p.normal.Dot(poly.plane.normal) > 0 {
			*coF = append(*coF, poly)
		} else {
			*coB = append(*coB, poly)
		}
	case front:
		*f = append(*f, poly)
	case back:
		*b = append(*b, poly)
	case spanning:
		var fverts, bverts []bspVertex
		n := len(poly.verts)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.verts[i], poly.verts[j]
			if ti != back {
				fverts = append(fverts, vi)
			}
			if ti != front {
				bverts = append(bverts, vi)
			}
			if (ti | tj) == spanning {
				denom := p.normal.Dot(vj.pos.Sub(vi.pos))
				t := (p.w - p.normal.Dot(vi.pos)) / denom
				mid := lerpVertex(vi, vj, t)
				fverts = append(fverts, mid)
				bverts = append(bverts, mid)
			}
		}
		if len(fverts) >= 3 {
			*f = append(*f, newBSPPolygon(fverts))
		}
		if len(bverts) >= 3 {
			*b = append(*b, newBSPPolygon(bverts))
		}
	}
}

// bspNode is one node of the binary space partition built from a
// solid's polygon list; Node.plane is the splitting plane of the first
// polygon in its bucket, front/back hold the recursively-partitioned
// remainder.
type bspNode struct {
	plane      bspPlane
	hasPlane   bool
	polygons   []bspPolygon
	front, back *bspNode
}

func newBSPTree(polys []bspPolygon) *bspNode {
	n := &bspNode{}
	if len(polys) > 0 {
		n.build(polys)
	}
	return n
}

func (n *bspNode) build(polys []bspPolygon) {
	if len(polys) == 0 {
		return
	}
	if !n.hasPlane {
		n.plane = polys[0].plane
		n.hasPlane = true
	}
	var coF, coB, f, b []bspPolygon
	for _, p := range polys {
		n.plane.split(p, &coF, &coB, &f, &b)
	}
	n.polygons = append(n.polygons, coF...)
	n.polygons = append(n.polygons, coB...)
	if len(f) > 0 {
		if n.front == nil {
			n.front = &bspNode{}
		}
		n.front.build(f)
	}
	if len(b) > 0 {
		if n.back == nil {
			n.back = &bspNode{}
		}
		n.back.build(b)
	}
}

// invert flips the solid this tree represents to its complement:
// every plane and polygon normal reverses, and front/back subtrees
// swap — the operation union/subtract/intersect compose around.
func (n *bspNode) invert() {
	if n == nil {
		return
	}
	for i := range n.polygons {
		n.polygons[i] = flipPolygon(n.polygons[i])
	}
	n.plane = n.plane.flip()
	n.front, n.back = n.back, n.front
	n.front.invert()
	n.back.invert()
}

func flipPolygon(p bspPolygon) bspPolygon {
	verts := make([]bspVertex, len(p.verts))
	for i, v := range p.verts {
		verts[len(p.verts)-1-i] = bspVertex{pos: v.pos, normal: v.normal.Neg()}
	}
	return bspPolygon{verts: verts, plane: p.plane.flip()}
}

// clipPolygons removes, from polys, the portion that lies inside the
// solid this tree represents.
func (n *bspNode) clipPolygons(polys []bspPolygon) []bspPolygon {
	if n == nil || !n.hasPlane {
		return append([]bspPolygon(nil), polys...)
	}
	var f, b []bspPolygon
	for _, p := range polys {
		var coF, coB []bspPolygon
		n.plane.split(p, &coF, &coB, &f, &b)
		f = append(f, coF...)
		b = append(b, coB...)
	}
	if n.front != nil {
		f = n.front.clipPolygons(f)
	}
	if n.back != nil {
		b = n.back.clipPolygons(b)
	} else {
		b = nil
	}
	return append(f, b...)
}

// clipTo removes from n every polygon (or polygon fragment) that lies
// inside the solid other represents — the core "keep only what's
// outside the other solid" step every Boolean operator is built from.
func (n *bspNode) clipTo(other *bspNode) {
	if n == nil {
		return
	}
	n.polygons = other.clipPolygons(n.polygons)
	n.front.clipTo(other)
	n.back.clipTo(other)
}

func (n *bspNode) allPolygons() []bspPolygon {
	if n == nil {
		return nil
	}
	out := append([]bspPolygon(nil), n.polygons...)
	out = append(out, n.front.allPolygons()...)
	out = append(out, n.back.allPolygons()...)
	return out
}

// union returns the polygon soup bounding a ∪ b.
func union(a, b []bspPolygon) []bspPolygon {
	ta, tb := newBSPTree(a), newBSPTree(b)
	ta.clipTo(tb)
	tb.clipTo(ta)
	tb.invert()
	tb.clipTo(ta)
	tb.invert()
	ta.build(tb.allPolygons())
	return ta.allPolygons()
}

// subtract returns the polygon soup bounding a − b.
func subtract(a, b []bspPolygon) []bspPolygon {
	ta, tb := newBSPTree(a), newBSPTree(b)
	ta.invert()
	ta.clipTo(tb)
	tb.clipTo(ta)
	tb.invert()
	tb.clipTo(ta)
	tb.invert()
	ta.build(tb.allPolygons())
	ta.invert()
	return ta.allPolygons()
}

// intersect returns the polygon soup bounding a ∩ b.
func intersect(a, b []bspPolygon) []bspPolygon {
	ta, tb := newBSPTree(a), newBSPTree(b)
	ta.invert()
	tb.clipTo(ta)
	tb.invert()
	ta.clipTo(tb)
	tb.clipTo(ta)
	ta.build(tb.allPolygons())
	ta.invert()
	return ta.allPolygons()
}
