package geometry

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// Domain is a closed parameter range [Lo, Hi]. For a periodic curve or
// surface direction, Hi-Lo equal to the period (2π for circles/arcs)
// signals the full closed shape rather than a proper sub-arc.
type Domain = gmath.Interval

// Curve is the closed capability set every curve family implements:
// line, circular/elliptic arc, and NURBS. Evaluate, Derivative1/2
// and Project must be defined over the curve's full Domain(); callers
// trim to a sub-range by carrying a Domain alongside the Curve rather
// than mutating it, since geometry entities are immutable and shared
// by value.
type Curve interface {
	// Domain returns the curve's canonical parameter range.
	Domain() Domain

	// Evaluate returns the 3D position at parameter t, which must lie
	// in Domain() (or at a point congruent to it modulo the period for
	// a periodic curve).
	Evaluate(t float64) gmath.Vec3

	// Derivative1 returns the first derivative (tangent, not
	// necessarily unit length) at parameter t.
	Derivative1(t float64) gmath.Vec3

	// Derivative2 returns the second derivative at parameter t.
	Derivative2(t float64) gmath.Vec3

	// BBox returns an axis-aligned bounding box of the curve restricted
	// to sub.
	BBox(sub Domain) gmath.AABB

	// Project returns the parameter, 3D foot-point, and distance of the
	// closest point on the curve (restricted to sub) to p.
	Project(p gmath.Vec3, sub Domain) (t float64, foot gmath.Vec3, dist float64)

	// Periodic reports whether the curve wraps (full circle/ellipse, or
	// a periodic NURBS curve), and if so its period.
	Periodic() (isPeriodic bool, period float64)
}

// projectBySampling is a shared fallback used by curve families with
// no closed-form footpoint (general NURBS): coarse uniform sampling
// followed by local refinement via a few Newton steps on the squared
// distance function's derivative. Grounded on the same
// sample-then-refine shape the spec's NURBS intersection uses
// ("Bézier subdivision + Newton refinement").
func projectBySampling(c Curve, p gmath.Vec3, sub Domain, samples int) (float64, gmath.Vec3, float64) {
	if samples < 2 {
		samples = 2
	}
	bestT := sub.Lo
	bestDist := p.DistanceTo(c.Evaluate(sub.Lo))
	step := sub.Width() / float64(samples-1)
	for i := 1; i < samples; i++ {
		t := sub.Lo + step*float64(i)
		d := p.DistanceTo(c.Evaluate(t))
		if d < bestDist {
			bestDist = d
			bestT = t
		}
	}

	t := bestT
	for iter := 0; iter < 8; iter++ {
		pos := c.Evaluate(t)
		d1 := c.Derivative1(t)
		d2 := c.Derivative2(t)
		diff := pos.Sub(p)
		f := diff.Dot(d1)
		fPrime := d1.Dot(d1) + diff.Dot(d2)
		if fPrime == 0 {
			break
		}
		next := t - f/fPrime
		if next < sub.Lo {
			next = sub.Lo
		}
		if next > sub.Hi {
			next = sub.Hi
		}
		if abs(next-t) < 1e-13 {
			t = next
			break
		}
		t = next
	}
	foot := c.Evaluate(t)
	return t, foot, p.DistanceTo(foot)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
