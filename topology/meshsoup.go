package topology

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// weldKey buckets nearby points onto the same vertex within a
// tolerance-sized grid cell, the same quantize-and-bucket technique
// tessellate.weld uses on the way back out to a mesh.
type weldKey struct{ x, y, z int64 }

// NewFromPolygonSoup assembles a Body from an unordered list of planar
// convex polygon rings (each a closed, consistently-wound loop of 3D
// points) that together bound a closed, connected, orientable shell —
// the shape the Boolean rebuild in operations/boolean.go and the feature constructors
// that build new bodies by direct polygon assembly both produce. Edges
// shared between two rings (wound in opposite directions, as any two
// adjacent faces of a closed solid are) are welded into a single Edge
// with matched partner coedges, via the same edgeKey cache addRingFace
// uses for a single primitive.
//
// The result's genus is not tracked incrementally (there is no Euler
// operator sequence here — the whole shell is assembled in one pass);
// instead it is solved for directly from the assembled V-E+F Euler
// characteristic, since every face built this way has exactly one
// simple outer loop (L == F), collapsing the general invariant to
// V-E+F = 2(S-H) with S = 1.
func NewFromPolygonSoup(tol *gmath.ToleranceContext, polygons [][]gmath.Vec3) (*Body, error) {
	if tol == nil {
		tol = gmath.NewToleranceContext()
	}
	if len(polygons) == 0 {
		return nil, ErrPrecondition
	}
	b := NewEmptyBody(tol)
	shell := b.newShell(Shell{})
	b.shellList = append(b.shellList, shell)

	cell := tol.Linear() * 4
	if cell <= 0 {
		cell = 1e-5
	}
	vertMap := make(map[weldKey]VertexID)
	quantize := func(p gmath.Vec3) weldKey {
		return weldKey{
			int64(math.Round(p.X / cell)),
			int64(math.Round(p.Y / cell)),
			int64(math.Round(p.Z / cell)),
		}
	}
	edgeCache := make(map[edgeKey]EdgeID)

	for _, poly := range polygons {
		if len(poly) < 3 {
			continue
		}
		normal := polygonNormal(poly)
		if normal.LengthSq() < 1e-20 {
			continue // degenerate (collinear or zero-area) sliver, drop it
		}

		uAxis, ok := pickInPlaneAxis(poly, normal)
		if !ok {
			continue
		}
		vAxis := normal.Cross(uAxis)
		vAxis, _ = vAxis.Normalize()

		uLo, uHi, vLo, vHi := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
		origin := poly[0]
		for _, p := range poly {
			d := p.Sub(origin)
			u, v := d.Dot(uAxis), d.Dot(vAxis)
			uLo, uHi = math.Min(uLo, u), math.Max(uHi, u)
			vLo, vHi = math.Min(vLo, v), math.Max(vHi, v)
		}
		plane, err := geometry.NewPlane(origin, uAxis, vAxis, uLo, uHi, vLo, vHi)
		if err != nil {
			continue
		}

		verts := make([]VertexID, len(poly))
		for i, p := range poly {
			k := quantize(p)
			if id, ok := vertMap[k]; ok {
				verts[i] = id
				continue
			}
			id := b.newVertex(p)
			vertMap[k] = id
			verts[i] = id
		}

		curves := make([]geometry.Curve, len(poly))
		domains := make([]geometry.Domain, len(poly))
		degenerate := false
		for i := range poly {
			from, to := poly[i], poly[(i+1)%len(poly)]
			dir := to.Sub(from)
			length := dir.Length()
			if length < tol.Linear() {
				degenerate = true
				break
			}
			line, err := geometry.NewLine(from, dir.Scale(1/length), 0, length)
			if err != nil {
				degenerate = true
				break
			}
			curves[i] = line
			domains[i] = gmath.Interval{Lo: 0, Hi: length}
		}
		if degenerate {
			continue
		}

		b.addRingFace(shell, plane, plane.UVDomain(), verts, curves, domains, edgeCache)
	}

	if len(b.faces) == 0 {
		return nil, ErrPrecondition
	}

	v, e, f, _ := b.counts()
	chi := v - e + f
	genus := 1 - chi/2
	if genus < 0 {
		genus = 0
	}
	b.shells[shell].genus = genus

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}

func polygonNormal(poly []gmath.Vec3) gmath.Vec3 {
	var n gmath.Vec3
	for i := range poly {
		a := poly[i]
		bp := poly[(i+1)%len(poly)]
		n.X += (a.Y - bp.Y) * (a.Z + bp.Z)
		n.Y += (a.Z - bp.Z) * (a.X + bp.X)
		n.Z += (a.X - bp.X) * (a.Y + bp.Y)
	}
	if u, err := n.Normalize(); err == nil {
		return u
	}
	return gmath.Vec3{}
}

// pickInPlaneAxis returns a unit vector in the polygon's plane,
// skipping any zero-length first edge (possible after vertex welding
// collapses two ring points together).
func pickInPlaneAxis(poly []gmath.Vec3, normal gmath.Vec3) (gmath.Vec3, bool) {
	for i := 0; i < len(poly); i++ {
		d := poly[(i+1)%len(poly)].Sub(poly[i])
		// Remove any out-of-plane component before normalizing, so a
		// slightly non-planar input ring still yields a usable basis.
		d = d.Sub(normal.Scale(d.Dot(normal)))
		if u, err := d.Normalize(); err == nil {
			return u, true
		}
	}
	return gmath.Vec3{}, false
}
