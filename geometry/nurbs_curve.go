package geometry

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// NURBSCurve is a non-uniform rational B-spline curve of degree
// Degree, with len(ControlPoints) == len(Weights) and
// len(Knots) == len(ControlPoints) + Degree + 1, the standard NURBS
// bookkeeping invariant.
type NURBSCurve struct {
	Degree         int
	ControlPoints  []gmath.Vec3
	Weights        []float64
	Knots          []float64
	periodic       bool
	periodicPeriod float64
}

// NewNURBSCurve validates the knot/control-point/weight bookkeeping and
// returns a NURBSCurve, or ErrInvalidDefinition if the counts are
// inconsistent or any weight is non-positive.
func NewNURBSCurve(degree int, controlPoints []gmath.Vec3, weights, knots []float64) (*NURBSCurve, error) {
	n := len(controlPoints)
	if degree < 1 || n < degree+1 {
		return nil, ErrInvalidDefinition
	}
	if len(weights) != n {
		return nil, ErrInvalidDefinition
	}
	if len(knots) != n+degree+1 {
		return nil, ErrInvalidDefinition
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, ErrInvalidDefinition
		}
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return nil, ErrInvalidDefinition
		}
	}
	return &NURBSCurve{Degree: degree, ControlPoints: controlPoints, Weights: weights, Knots: knots}, nil
}

func (c *NURBSCurve) Domain() Domain {
	p := c.Degree
	return gmath.NewInterval(c.Knots[p], c.Knots[len(c.Knots)-p-1])
}

// basisFuncs evaluates the Degree+1 nonzero B-spline basis functions at
// t, returning them alongside the knot span index, via the standard
// Cox-de Boor recursion shared with NURBSSurface.
func (c *NURBSCurve) basisFuncs(t float64) (span int, N []float64) {
	return basisFuncsGeneric(t, c.Degree, c.Knots, len(c.ControlPoints))
}

func findSpan(t float64, p int, knots []float64, numCtrl int) int {
	if t >= knots[numCtrl] {
		return numCtrl - 1
	}
	lo, hi := p, numCtrl
	mid := (lo + hi) / 2
	for t < knots[mid] || t >= knots[mid+1] {
		if t < knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
		mid = (lo + hi) / 2
	}
	return mid
}

func (c *NURBSCurve) Evaluate(t float64) gmath.Vec3 {
	p := c.Degree
	span, N := c.basisFuncs(t)
	var num gmath.Vec3
	var den float64
	for j := 0; j <= p; j++ {
		idx := span - p + j
		w := c.Weights[idx] * N[j]
		num = num.Add(c.ControlPoints[idx].Scale(w))
		den += w
	}
	if den == 0 {
		return gmath.Zero3
	}
	return num.Scale(1 / den)
}

// Derivative1 is computed by central finite difference on the rational
// evaluation rather than the closed-form rational-derivative formula:
// the curve's Degree is usually low (<=5) in practice, so the
// finite-difference error is within the kernel's linear tolerance,
// and this avoids re-deriving the full NURBS derivative algebra for a
// path that is not itself a hot loop (only intersection Newton
// refinement calls it).
func (c *NURBSCurve) Derivative1(t float64) gmath.Vec3 {
	const h = 1e-6
	d := c.Domain()
	t0, t1 := t-h, t+h
	if t0 < d.Lo {
		t0 = d.Lo
	}
	if t1 > d.Hi {
		t1 = d.Hi
	}
	if t1 == t0 {
		return gmath.Zero3
	}
	return c.Evaluate(t1).Sub(c.Evaluate(t0)).Scale(1 / (t1 - t0))
}

func (c *NURBSCurve) Derivative2(t float64) gmath.Vec3 {
	const h = 1e-4
	d := c.Domain()
	t0, t1 := t-h, t+h
	if t0 < d.Lo {
		t0 = d.Lo
	}
	if t1 > d.Hi {
		t1 = d.Hi
	}
	mid := c.Evaluate(t)
	return c.Evaluate(t1).Add(c.Evaluate(t0)).Sub(mid.Scale(2)).Scale(1 / (h * h))
}

func (c *NURBSCurve) BBox(sub Domain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	for _, cp := range c.ControlPoints {
		box = box.Extend(cp)
	}
	_ = sub // the control-polygon hull always encloses the curve (convex hull property)
	return box
}

func (c *NURBSCurve) Project(p gmath.Vec3, sub Domain) (float64, gmath.Vec3, float64) {
	return projectBySampling(c, p, sub, 32)
}

func (c *NURBSCurve) Periodic() (bool, float64) { return c.periodic, c.periodicPeriod }
