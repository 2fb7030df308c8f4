package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// CurveCurveHit is one intersection point between two curves.
type CurveCurveHit struct {
	ParamA, ParamB float64
	Point          gmath.Vec3
}

// IntersectCurveCurve finds all transversal intersection points between
// a (restricted to subA) and b (restricted to subB), within the linear
// tolerance tol. Line-line pairs use a closed-form analytic solution;
// any other pair (including line-arc and NURBS) falls back to uniform
// sample seeding followed by 2-variable Newton refinement on the
// squared-separation function, mirroring the "analytic fast path,
// iterative general path" shape used throughout this package.
//
// Returns ErrDegenerate if either curve's domain has zero width.
// Coincident (identical, infinitely-overlapping) curves report
// ErrTangentialOnly rather than an unbounded hit list.
func IntersectCurveCurve(a Curve, subA Domain, b Curve, subB Domain, tol float64) ([]CurveCurveHit, error) {
	if subA.Width() <= 0 || subB.Width() <= 0 {
		return nil, ErrDegenerate
	}

	if lineA, ok := a.(*Line); ok {
		if lineB, ok := b.(*Line); ok {
			return intersectLineLine(lineA, subA, lineB, subB, tol)
		}
	}

	return intersectCurvesNumeric(a, subA, b, subB, tol)
}

func intersectLineLine(a *Line, subA Domain, b *Line, subB Domain, tol float64) ([]CurveCurveHit, error) {
	// Solve a.Origin + t*a.Direction == b.Origin + s*b.Direction in the
	// least-squares sense over the 3 coordinates, then verify the
	// residual is within tolerance (the two lines may be skew).
	cross := a.Direction.Cross(b.Direction)
	crossLenSq := cross.LengthSq()
	w0 := a.Origin.Sub(b.Origin)

	if crossLenSq < 1e-24 {
		// Parallel or anti-parallel. Coincident iff w0 is also parallel
		// to the shared direction.
		if w0.Cross(a.Direction).LengthSq() < tol*tol {
			return nil, ErrTangentialOnly
		}
		return nil, nil
	}

	// Standard closest-approach-of-two-lines formulas.
	d1343 := w0.Dot(b.Direction)
	d4321 := b.Direction.Dot(a.Direction)
	d1321 := w0.Dot(a.Direction)
	d4343 := b.Direction.Dot(b.Direction)
	d2121 := a.Direction.Dot(a.Direction)

	denom := d2121*d4343 - d4321*d4321
	if math.Abs(denom) < 1e-24 {
		return nil, nil
	}
	t := (d1343*d4321 - d1321*d4343) / denom
	s := (d1343 + t*d4321) / d4343

	pa := a.Evaluate(t)
	pb := b.Evaluate(s)
	if pa.DistanceTo(pb) > tol {
		return nil, nil
	}
	if !subA.Contains(t) || !subB.Contains(s) {
		return nil, nil
	}
	mid := pa.Lerp(pb, 0.5)
	return []CurveCurveHit{{ParamA: t, ParamB: s, Point: mid}}, nil
}

// intersectCurvesNumeric seeds candidate parameter pairs on a uniform
// grid over (subA, subB), keeps the local minima of squared separation
// below tol, refines each with Newton iteration on the 2-variable
// system, and deduplicates near-identical hits.
func intersectCurvesNumeric(a Curve, subA Domain, b Curve, subB Domain, tol float64) ([]CurveCurveHit, error) {
	const grid = 48
	type seed struct{ t, s float64 }
	var seeds []seed

	stepA := subA.Width() / float64(grid)
	stepB := subB.Width() / float64(grid)
	best := math.Inf(1)
	for i := 0; i <= grid; i++ {
		t := subA.Lo + stepA*float64(i)
		pa := a.Evaluate(t)
		for j := 0; j <= grid; j++ {
			s := subB.Lo + stepB*float64(j)
			d := pa.DistanceTo(b.Evaluate(s))
			if d < tol*20 {
				seeds = append(seeds, seed{t, s})
			}
			if d < best {
				best = d
			}
		}
	}

	var hits []CurveCurveHit
	for _, sd := range seeds {
		t, s, ok := refineCurveCurve(a, b, sd.t, sd.s, subA, subB)
		if !ok {
			continue
		}
		pa := a.Evaluate(t)
		pb := b.Evaluate(s)
		if pa.DistanceTo(pb) > tol {
			continue
		}
		duplicate := false
		for _, h := range hits {
			if h.Point.DistanceTo(pa) < tol*4 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			hits = append(hits, CurveCurveHit{ParamA: t, ParamB: s, Point: pa.Lerp(pb, 0.5)})
		}
	}
	return hits, nil
}

func refineCurveCurve(a, b Curve, t, s float64, subA, subB Domain) (float64, float64, bool) {
	for iter := 0; iter < 20; iter++ {
		pa := a.Evaluate(t)
		pb := b.Evaluate(s)
		diff := pa.Sub(pb)
		da := a.Derivative1(t)
		db := b.Derivative1(s)

		// Minimize |pa(t)-pb(s)|^2: gradient is (diff.da, -diff.db);
		// take one Gauss-Newton step using the 2x2 Jacobian of the
		// gradient w.r.t. (t,s).
		g1 := diff.Dot(da)
		g2 := -diff.Dot(db)
		h11 := da.Dot(da)
		h12 := -da.Dot(db)
		h22 := db.Dot(db)
		det := h11*h22 - h12*h12
		if math.Abs(det) < 1e-20 {
			return 0, 0, false
		}
		dt := (g1*h22 - g2*h12) / det
		ds := (g2*h11 - g1*h12) / det
		nt := clampTo(t-dt, subA)
		ns := clampTo(s-ds, subB)
		if abs(nt-t) < 1e-13 && abs(ns-s) < 1e-13 {
			return nt, ns, true
		}
		t, s = nt, ns
	}
	return t, s, true
}
