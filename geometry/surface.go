package geometry

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// UVDomain is the rectangular parameter domain of a surface: U x V,
// each a closed Domain. A torus or cylinder marks one or both axes
// periodic via Periodic(); the domain rectangle still describes one
// canonical period.
type UVDomain struct {
	U, V Domain
}

// Surface is the closed capability set every surface family
// implements: plane, cylinder, sphere, cone, torus, and NURBS.
type Surface interface {
	// UVDomain returns the surface's canonical (u, v) parameter
	// rectangle.
	UVDomain() UVDomain

	// Evaluate returns the 3D position at (u, v).
	Evaluate(u, v float64) gmath.Vec3

	// DerivativeU returns ∂S/∂u at (u, v).
	DerivativeU(u, v float64) gmath.Vec3

	// DerivativeV returns ∂S/∂v at (u, v).
	DerivativeV(u, v float64) gmath.Vec3

	// Normal returns the outward unit surface normal at (u, v), derived
	// from DerivativeU x DerivativeV. Returns ErrDegenerate at a
	// singular point (such as the cone apex) where the cross product
	// vanishes; Sphere instead returns the radial direction at its poles.
	Normal(u, v float64) (gmath.Vec3, error)

	// BBox returns an axis-aligned bounding box of the surface
	// restricted to sub.
	BBox(sub UVDomain) gmath.AABB

	// Project returns the (u, v) parameter, 3D foot-point, and distance
	// of the closest point on the surface (restricted to sub) to p.
	Project(p gmath.Vec3, sub UVDomain) (u, v float64, foot gmath.Vec3, dist float64)

	// PeriodicU and PeriodicV report whether the surface wraps along
	// each parameter direction, and if so its period.
	PeriodicU() (isPeriodic bool, period float64)
	PeriodicV() (isPeriodic bool, period float64)
}

// normalFromDerivatives is the shared cross-product-and-normalize step
// every analytic surface's Normal method funnels through.
func normalFromDerivatives(du, dv gmath.Vec3) (gmath.Vec3, error) {
	return du.Cross(dv).Normalize()
}

// projectSurfaceBySampling is the generic fallback used by NURBS
// surfaces with no closed-form footpoint: a coarse uniform grid search
// followed by Newton refinement on the squared-distance gradient.
func projectSurfaceBySampling(s Surface, p gmath.Vec3, sub UVDomain, gridU, gridV int) (float64, float64, gmath.Vec3, float64) {
	if gridU < 2 {
		gridU = 2
	}
	if gridV < 2 {
		gridV = 2
	}
	bestU, bestV := sub.U.Lo, sub.V.Lo
	bestDist := p.DistanceTo(s.Evaluate(bestU, bestV))
	stepU := sub.U.Width() / float64(gridU-1)
	stepV := sub.V.Width() / float64(gridV-1)
	for i := 0; i < gridU; i++ {
		u := sub.U.Lo + stepU*float64(i)
		for j := 0; j < gridV; j++ {
			v := sub.V.Lo + stepV*float64(j)
			d := p.DistanceTo(s.Evaluate(u, v))
			if d < bestDist {
				bestDist, bestU, bestV = d, u, v
			}
		}
	}

	u, v := bestU, bestV
	for iter := 0; iter < 8; iter++ {
		pos := s.Evaluate(u, v)
		diff := pos.Sub(p)
		su := s.DerivativeU(u, v)
		sv := s.DerivativeV(u, v)

		fu := diff.Dot(su)
		fv := diff.Dot(sv)
		// Gauss-Newton step on the 2x2 normal-equations system using the
		// first-derivative (tangent) terms only, a standard cheap
		// approximation for footpoint refinement.
		a11 := su.Dot(su)
		a12 := su.Dot(sv)
		a22 := sv.Dot(sv)
		det := a11*a22 - a12*a12
		if det == 0 {
			break
		}
		du := (fu*a22 - fv*a12) / det
		dv := (fv*a11 - fu*a12) / det
		nu := clampTo(u-du, sub.U)
		nv := clampTo(v-dv, sub.V)
		if abs(nu-u) < 1e-13 && abs(nv-v) < 1e-13 {
			u, v = nu, nv
			break
		}
		u, v = nu, nv
	}
	foot := s.Evaluate(u, v)
	return u, v, foot, p.DistanceTo(foot)
}

func clampTo(x float64, d Domain) float64 {
	if x < d.Lo {
		return d.Lo
	}
	if x > d.Hi {
		return d.Hi
	}
	return x
}
