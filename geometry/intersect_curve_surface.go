package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// CurveSurfaceHit is one intersection point between a curve and a
// surface.
type CurveSurfaceHit struct {
	ParamT    float64
	ParamU, V float64
	Point     gmath.Vec3
}

// IntersectCurveSurface finds all transversal intersection points of
// curve c (restricted to sub) with surface s (restricted to uvSub),
// within linear tolerance tol. Line-plane pairs use the closed-form
// solution; every other pair marches the curve in uniform steps,
// seeds a Newton solve on (t, u, v) at each sign change of the
// point-to-surface signed distance (approximated via the nearest
// footpoint), and deduplicates.
func IntersectCurveSurface(c Curve, sub Domain, s Surface, uvSub UVDomain, tol float64) ([]CurveSurfaceHit, error) {
	if sub.Width() <= 0 {
		return nil, ErrDegenerate
	}

	if line, ok := c.(*Line); ok {
		if plane, ok := s.(*Plane); ok {
			return intersectLinePlane(line, sub, plane, uvSub, tol)
		}
	}

	return intersectCurveSurfaceNumeric(c, sub, s, uvSub, tol)
}

func intersectLinePlane(l *Line, sub Domain, p *Plane, uvSub UVDomain, tol float64) ([]CurveSurfaceHit, error) {
	n := p.NormalVector()
	denom := n.Dot(l.Direction)
	if math.Abs(denom) < 1e-12 {
		// Parallel to the plane: either disjoint or fully contained.
		if math.Abs(n.Dot(l.Origin.Sub(p.Origin))) < tol {
			return nil, ErrTangentialOnly
		}
		return nil, nil
	}
	t := n.Dot(p.Origin.Sub(l.Origin)) / denom
	if !sub.Contains(t) {
		return nil, nil
	}
	point := l.Evaluate(t)
	rel := point.Sub(p.Origin)
	u, v := rel.Dot(p.U), rel.Dot(p.V)
	if !uvSub.U.Contains(u) || !uvSub.V.Contains(v) {
		return nil, nil
	}
	return []CurveSurfaceHit{{ParamT: t, ParamU: u, V: v, Point: point}}, nil
}

func intersectCurveSurfaceNumeric(c Curve, sub Domain, s Surface, uvSub UVDomain, tol float64) ([]CurveSurfaceHit, error) {
	const steps = 96
	step := sub.Width() / float64(steps)

	signedDist := func(t float64) (float64, float64, float64, gmath.Vec3) {
		p := c.Evaluate(t)
		u, v, foot, dist := s.Project(p, uvSub)
		n, err := s.Normal(u, v)
		sign := 1.0
		if err == nil && n.Dot(p.Sub(foot)) < 0 {
			sign = -1.0
		}
		return sign * dist, u, v, foot
	}

	var hits []CurveSurfaceHit
	prevT := sub.Lo
	prevD, _, _, _ := signedDist(prevT)
	for i := 1; i <= steps; i++ {
		t := sub.Lo + step*float64(i)
		d, u, v, _ := signedDist(t)
		if (prevD <= 0) != (d <= 0) || math.Abs(d) < tol {
			rt, ru, rv, ok := refineCurveSurface(c, s, (prevT+t)/2, u, v, sub, uvSub)
			if ok {
				point := c.Evaluate(rt)
				_, _, foot, dist := s.Project(point, uvSub)
				if dist < tol*8 {
					dup := false
					for _, h := range hits {
						if h.Point.DistanceTo(foot) < tol*4 {
							dup = true
							break
						}
					}
					if !dup {
						hits = append(hits, CurveSurfaceHit{ParamT: rt, ParamU: ru, V: rv, Point: foot})
					}
				}
			}
		}
		prevT, prevD = t, d
	}
	return hits, nil
}

func refineCurveSurface(c Curve, s Surface, t, u, v float64, sub Domain, uvSub UVDomain) (float64, float64, float64, bool) {
	for iter := 0; iter < 20; iter++ {
		p := c.Evaluate(t)
		su, sv, foot, dist := s.Project(p, uvSub)
		u, v = su, sv
		if dist < 1e-13 {
			return t, u, v, true
		}
		tangent := c.Derivative1(t)
		// Move t to reduce the distance to the surface footpoint along
		// the curve's own tangent direction (a 1D Newton step on the
		// curve, re-projecting onto the surface each iteration).
		diff := p.Sub(foot)
		denom := tangent.Dot(tangent)
		if denom < 1e-20 {
			return t, u, v, false
		}
		dt := diff.Dot(tangent) / denom
		nt := clampTo(t-dt, sub)
		if abs(nt-t) < 1e-13 {
			return nt, u, v, true
		}
		t = nt
	}
	return t, u, v, true
}
