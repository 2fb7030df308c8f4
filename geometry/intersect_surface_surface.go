package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// SurfaceSurfaceCurve is one connected branch of the intersection
// between two surfaces, represented as a polyline of closely spaced
// 3D points (chord-error below the tolerance the march was run at).
// The Operations layer fits a NURBSCurve through these points (or
// consumes the polyline directly) when building imprint edges.
type SurfaceSurfaceCurve struct {
	Points []gmath.Vec3
}

// IntersectSurfaceSurface finds the intersection curve(s) of surfaces a
// (restricted to subA) and b (restricted to subB) within linear
// tolerance tol, via marching: seed candidate points on a coarse grid
// where both surfaces pass close to each other, refine each seed onto
// the true intersection curve with Newton iteration constrained to
// stay on both surfaces, then walk each seed outward along the local
// tangent direction (cross product of the two surface normals) in
// both directions until leaving either surface's domain or tolerance
// degrades — the standard plane/analytic-surface marching technique,
// generalized here to any two Surface implementations via Project.
//
// Plane-plane pairs use the closed-form line-of-intersection solution.
func IntersectSurfaceSurface(a Surface, subA UVDomain, b Surface, subB UVDomain, tol float64) ([]SurfaceSurfaceCurve, error) {
	if planeA, ok := a.(*Plane); ok {
		if planeB, ok := b.(*Plane); ok {
			return intersectPlanePlane(planeA, subA, planeB, subB, tol)
		}
	}
	return marchSurfaceSurface(a, subA, b, subB, tol)
}

func intersectPlanePlane(a *Plane, subA UVDomain, b *Plane, subB UVDomain, tol float64) ([]SurfaceSurfaceCurve, error) {
	na := a.NormalVector()
	nb := b.NormalVector()
	dir := na.Cross(nb)
	if dir.LengthSq() < 1e-24 {
		if math.Abs(na.Dot(a.Origin.Sub(b.Origin))) < tol {
			return nil, ErrTangentialOnly
		}
		return nil, nil
	}
	dir, _ = dir.Normalize()

	// Solve for a point on both planes: minimize distance subject to
	// both plane equations, via the standard 2-plane intersection
	// formula using the two normals and their cross product.
	da := na.Dot(a.Origin)
	db := nb.Dot(b.Origin)
	n1, n2 := na, nb
	denom := n1.Dot(n1)*n2.Dot(n2) - n1.Dot(n2)*n1.Dot(n2)
	if math.Abs(denom) < 1e-20 {
		return nil, nil
	}
	c1 := (da*n2.Dot(n2) - db*n1.Dot(n2)) / denom
	c2 := (db*n1.Dot(n1) - da*n1.Dot(n2)) / denom
	point := n1.Scale(c1).Add(n2.Scale(c2))

	// Clip the infinite line to both finite uv rectangles by sampling a
	// span around point long enough to cover all of a's patch; good
	// enough for the rectangular planar patches this kernel builds (face
	// loops trim the result further downstream).
	boxA := a.BBox(subA)
	half := boxA.Max.Sub(boxA.Min).Length() + point.DistanceTo(boxA.Min)
	lineLo := point.Add(dir.Scale(-half))
	lineHi := point.Add(dir.Scale(half))
	var pts []gmath.Vec3
	const samples = 256
	for i := 0; i <= samples; i++ {
		tt := float64(i) / float64(samples)
		p := lineLo.Lerp(lineHi, tt)
		rel := p.Sub(a.Origin)
		ua, va := rel.Dot(a.U), rel.Dot(a.V)
		if !subA.U.Contains(ua) || !subA.V.Contains(va) {
			continue
		}
		relB := p.Sub(b.Origin)
		ub, vb := relB.Dot(b.U), relB.Dot(b.V)
		if !subB.U.Contains(ub) || !subB.V.Contains(vb) {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, nil
	}
	return []SurfaceSurfaceCurve{{Points: pts}}, nil
}

func marchSurfaceSurface(a Surface, subA UVDomain, b Surface, subB UVDomain, tol float64) ([]SurfaceSurfaceCurve, error) {
	const grid = 24
	type seed struct{ ua, va, ub, vb float64 }
	var seeds []seed

	stepUa := subA.U.Width() / float64(grid)
	stepVa := subA.V.Width() / float64(grid)
	for i := 0; i <= grid; i++ {
		ua := subA.U.Lo + stepUa*float64(i)
		for j := 0; j <= grid; j++ {
			va := subA.V.Lo + stepVa*float64(j)
			p := a.Evaluate(ua, va)
			ub, vb, foot, dist := b.Project(p, subB)
			if dist < tol*16 {
				seeds = append(seeds, seed{ua, va, ub, vb})
				_ = foot
			}
		}
	}
	if len(seeds) == 0 {
		return nil, nil
	}

	var curves []SurfaceSurfaceCurve
	visited := make([]bool, len(seeds))
	for i, sd := range seeds {
		if visited[i] {
			continue
		}
		pts := marchFromSeed(a, subA, b, subB, sd.ua, sd.va, tol)
		if len(pts) >= 2 {
			curves = append(curves, SurfaceSurfaceCurve{Points: pts})
		}
		// Mark nearby seeds visited so the same branch is not re-walked;
		// a cheap proximity test against the walked polyline suffices at
		// this grid resolution.
		for k, other := range seeds {
			if visited[k] {
				continue
			}
			p := a.Evaluate(other.ua, other.va)
			for _, q := range pts {
				if p.DistanceTo(q) < tol*32 {
					visited[k] = true
					break
				}
			}
		}
		visited[i] = true
	}
	return curves, nil
}

// marchFromSeed refines (ua0, va0) onto the true intersection curve and
// walks outward along the tangent (normalA x normalB) in both
// directions with a step sized from tol, stopping when either surface's
// domain is exited.
func marchFromSeed(a Surface, subA UVDomain, b Surface, subB UVDomain, ua0, va0, tol float64) []gmath.Vec3 {
	ua, va, ok := refineOntoIntersection(a, subA, b, subB, ua0, va0)
	if !ok {
		return nil
	}
	start := a.Evaluate(ua, va)

	stepLen := tol * 50
	if stepLen <= 0 {
		stepLen = 1e-4
	}
	const maxSteps = 200

	walk := func(sign float64) []gmath.Vec3 {
		var out []gmath.Vec3
		cu, cv := ua, va
		p := start
		for i := 0; i < maxSteps; i++ {
			na, errA := a.Normal(cu, cv)
			_, ub, vb, dist := projectToBWithUV(b, subB, p)
			if dist > tol*16 {
				break
			}
			nb, errB := b.Normal(ub, vb)
			if errA != nil || errB != nil {
				break
			}
			tangent := na.Cross(nb)
			if tangent.LengthSq() < 1e-20 {
				break
			}
			tangent, _ = tangent.Normalize()
			target := p.Add(tangent.Scale(sign * stepLen))

			nu, nv, pointOnA, distA := a.Project(target, subA)
			if distA > tol*16 {
				break
			}
			if !subA.U.Contains(nu) || !subA.V.Contains(nv) {
				break
			}
			nu2, nv2, refined, ok := refineOntoIntersection(a, subA, b, subB, nu, nv)
			if !ok {
				break
			}
			cu, cv = nu2, nv2
			p = refined
			_ = pointOnA
			out = append(out, p)
		}
		return out
	}

	forward := walk(1)
	backward := walk(-1)

	reversed := make([]gmath.Vec3, len(backward))
	for i, v := range backward {
		reversed[len(backward)-1-i] = v
	}
	pts := append(reversed, start)
	pts = append(pts, forward...)
	return pts
}

func projectToBWithUV(b Surface, subB UVDomain, p gmath.Vec3) (gmath.Vec3, float64, float64, float64) {
	u, v, foot, dist := b.Project(p, subB)
	return foot, u, v, dist
}

// refineOntoIntersection moves (ua, va) so that a's surface point also
// lies on b, via fixed-point iteration: project the current point onto
// b, then project that footpoint back onto a, repeating until the gap
// closes. This converges for surfaces meeting transversally; tangential
// contact is left to the caller's dist check to discard.
func refineOntoIntersection(a Surface, subA UVDomain, b Surface, subB UVDomain, ua, va float64) (float64, float64, bool) {
	for iter := 0; iter < 30; iter++ {
		p := a.Evaluate(ua, va)
		_, _, footB, distB := b.Project(p, subB)
		nu, nv, _, distA := a.Project(footB, subA)
		if distB < 1e-11 && distA < 1e-11 {
			return nu, nv, true
		}
		if abs(nu-ua) < 1e-14 && abs(nv-va) < 1e-14 {
			return nu, nv, distB < 1e-6
		}
		ua, va = nu, nv
	}
	return ua, va, false
}
