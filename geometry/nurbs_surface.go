package geometry

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// NURBSSurface is a tensor-product rational B-spline surface: a grid of
// NumU x NumV control points and weights, with independent degree and
// knot vectors in each parametric direction. It reuses the same
// Cox-de Boor basis evaluation as NURBSCurve, applied once per
// direction and combined as a tensor product.
type NURBSSurface struct {
	DegreeU, DegreeV int
	NumU, NumV       int
	ControlPoints    []gmath.Vec3 // row-major, length NumU*NumV
	Weights          []float64    // row-major, length NumU*NumV
	KnotsU, KnotsV   []float64
}

// NewNURBSSurface validates the tensor-product bookkeeping invariant
// and returns a NURBSSurface, or ErrInvalidDefinition on a mismatch.
func NewNURBSSurface(degreeU, degreeV, numU, numV int, controlPoints []gmath.Vec3, weights, knotsU, knotsV []float64) (*NURBSSurface, error) {
	if degreeU < 1 || degreeV < 1 || numU < degreeU+1 || numV < degreeV+1 {
		return nil, ErrInvalidDefinition
	}
	if len(controlPoints) != numU*numV || len(weights) != numU*numV {
		return nil, ErrInvalidDefinition
	}
	if len(knotsU) != numU+degreeU+1 || len(knotsV) != numV+degreeV+1 {
		return nil, ErrInvalidDefinition
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, ErrInvalidDefinition
		}
	}
	return &NURBSSurface{
		DegreeU: degreeU, DegreeV: degreeV, NumU: numU, NumV: numV,
		ControlPoints: controlPoints, Weights: weights, KnotsU: knotsU, KnotsV: knotsV,
	}, nil
}

func (s *NURBSSurface) UVDomain() UVDomain {
	return UVDomain{
		U: gmath.NewInterval(s.KnotsU[s.DegreeU], s.KnotsU[len(s.KnotsU)-s.DegreeU-1]),
		V: gmath.NewInterval(s.KnotsV[s.DegreeV], s.KnotsV[len(s.KnotsV)-s.DegreeV-1]),
	}
}

func (s *NURBSSurface) at(i, j int) (gmath.Vec3, float64) {
	idx := i*s.NumV + j
	return s.ControlPoints[idx], s.Weights[idx]
}

func (s *NURBSSurface) Evaluate(u, v float64) gmath.Vec3 {
	spanU, Nu := basisFuncsGeneric(u, s.DegreeU, s.KnotsU, s.NumU)
	spanV, Nv := basisFuncsGeneric(v, s.DegreeV, s.KnotsV, s.NumV)

	var num gmath.Vec3
	var den float64
	for a := 0; a <= s.DegreeU; a++ {
		i := spanU - s.DegreeU + a
		for b := 0; b <= s.DegreeV; b++ {
			j := spanV - s.DegreeV + b
			cp, w := s.at(i, j)
			weight := w * Nu[a] * Nv[b]
			num = num.Add(cp.Scale(weight))
			den += weight
		}
	}
	if den == 0 {
		return gmath.Zero3
	}
	return num.Scale(1 / den)
}

// basisFuncsGeneric is the tensor-product-surface twin of
// NURBSCurve.basisFuncs, factored out so both curve and surface
// evaluation share one Cox-de Boor implementation.
func basisFuncsGeneric(t float64, p int, knots []float64, numCtrl int) (int, []float64) {
	span := findSpan(t, p, knots, numCtrl)
	N := make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	N[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - knots[span+1-j]
		right[j] = knots[span+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			denom := right[r+1] + left[j-r]
			var temp float64
			if denom != 0 {
				temp = N[r] / denom
			}
			N[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		N[j] = saved
	}
	return span, N
}

func (s *NURBSSurface) DerivativeU(u, v float64) gmath.Vec3 {
	const h = 1e-6
	d := s.UVDomain()
	u0, u1 := clampTo(u-h, d.U), clampTo(u+h, d.U)
	if u1 == u0 {
		return gmath.Zero3
	}
	return s.Evaluate(u1, v).Sub(s.Evaluate(u0, v)).Scale(1 / (u1 - u0))
}

func (s *NURBSSurface) DerivativeV(u, v float64) gmath.Vec3 {
	const h = 1e-6
	d := s.UVDomain()
	v0, v1 := clampTo(v-h, d.V), clampTo(v+h, d.V)
	if v1 == v0 {
		return gmath.Zero3
	}
	return s.Evaluate(u, v1).Sub(s.Evaluate(u, v0)).Scale(1 / (v1 - v0))
}

func (s *NURBSSurface) Normal(u, v float64) (gmath.Vec3, error) {
	return normalFromDerivatives(s.DerivativeU(u, v), s.DerivativeV(u, v))
}

func (s *NURBSSurface) BBox(sub UVDomain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	for _, cp := range s.ControlPoints {
		box = box.Extend(cp)
	}
	_ = sub // convex hull property: control net always encloses the surface
	return box
}

func (s *NURBSSurface) Project(p gmath.Vec3, sub UVDomain) (float64, float64, gmath.Vec3, float64) {
	return projectSurfaceBySampling(s, p, sub, 24, 24)
}

func (s *NURBSSurface) PeriodicU() (bool, float64) { return false, 0 }
func (s *NURBSSurface) PeriodicV() (bool, float64) { return false, 0 }
