package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// Sphere is centered at Center with the given Radius. u is longitude
// in [0, 2*Pi), v is latitude in [-Pi/2, Pi/2] measured from the
// PoleAxis. Both poles (v = ±Pi/2) are parametric singularities where
// DerivativeU vanishes; Normal returns the radial direction there.
type Sphere struct {
	Center             gmath.Vec3
	PoleAxis           gmath.Vec3 // unit
	RefX, RefY         gmath.Vec3 // unit, orthogonal, u=0 equatorial frame
	Radius             float64
	domain             UVDomain
}

// NewSphere constructs a full Sphere of the given radius.
// ErrInvalidDefinition if radius <= 0 or poleAxis is degenerate.
func NewSphere(center, poleAxis gmath.Vec3, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, ErrInvalidDefinition
	}
	axis, err := poleAxis.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	refX, refY := arbitraryOrthonormalBasis(axis)
	return &Sphere{
		Center: center, PoleAxis: axis, RefX: refX, RefY: refY, Radius: radius,
		domain: UVDomain{U: gmath.NewInterval(0, 2*math.Pi), V: gmath.NewInterval(-math.Pi/2, math.Pi/2)},
	}, nil
}

func (s *Sphere) UVDomain() UVDomain { return s.domain }

func (s *Sphere) Evaluate(u, v float64) gmath.Vec3 {
	cv, sv := math.Cos(v), math.Sin(v)
	cu, su := math.Cos(u), math.Sin(u)
	equatorial := s.RefX.Scale(cu).Add(s.RefY.Scale(su)).Scale(cv)
	return s.Center.Add(equatorial.Scale(s.Radius)).Add(s.PoleAxis.Scale(s.Radius * sv))
}

func (s *Sphere) DerivativeU(u, v float64) gmath.Vec3 {
	cv := math.Cos(v)
	cu, su := math.Cos(u), math.Sin(u)
	tangent := s.RefX.Scale(-su).Add(s.RefY.Scale(cu))
	return tangent.Scale(s.Radius * cv)
}

func (s *Sphere) DerivativeV(u, v float64) gmath.Vec3 {
	sv, cv := math.Sin(v), math.Cos(v)
	cu, su := math.Cos(u), math.Sin(u)
	equatorial := s.RefX.Scale(cu).Add(s.RefY.Scale(su))
	return equatorial.Scale(-s.Radius * sv).Add(s.PoleAxis.Scale(s.Radius * cv))
}

func (s *Sphere) Normal(u, v float64) (gmath.Vec3, error) {
	du := s.DerivativeU(u, v)
	if du.LengthSq() < 1e-20 {
		// At a pole DerivativeU vanishes by construction (the longitude
		// circle shrinks to a point), so the radial direction from the
		// center gives the normal.
		n, err := s.Evaluate(u, v).Sub(s.Center).Normalize()
		if err != nil {
			return gmath.Zero3, ErrDegenerate
		}
		return n, nil
	}
	return normalFromDerivatives(du, s.DerivativeV(u, v))
}

func (s *Sphere) BBox(sub UVDomain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	samplesU, samplesV := 32, 16
	stepU := sub.U.Width() / float64(samplesU)
	stepV := sub.V.Width() / float64(samplesV)
	for i := 0; i <= samplesU; i++ {
		u := sub.U.Lo + stepU*float64(i)
		for j := 0; j <= samplesV; j++ {
			v := sub.V.Lo + stepV*float64(j)
			box = box.Extend(s.Evaluate(u, v))
		}
	}
	return box
}

func (s *Sphere) Project(p gmath.Vec3, sub UVDomain) (float64, float64, gmath.Vec3, float64) {
	rel := p.Sub(s.Center)
	dist := rel.Length()
	if dist < 1e-15 {
		// Center itself: parameter is undefined, pick the u=0, v=0 point.
		return sub.U.Lo, 0, s.Evaluate(sub.U.Lo, 0), s.Radius
	}
	dir, _ := rel.Normalize()
	sv := dir.Dot(s.PoleAxis)
	if sv > 1 {
		sv = 1
	}
	if sv < -1 {
		sv = -1
	}
	v := math.Asin(sv)
	equatorial := dir.Sub(s.PoleAxis.Scale(sv))
	x := equatorial.Dot(s.RefX)
	y := equatorial.Dot(s.RefY)
	u := math.Atan2(y, x)
	if u < 0 {
		u += 2 * math.Pi
	}
	u = wrapToDomain(u, sub.U)
	v = clampTo(v, sub.V)
	foot := s.Evaluate(u, v)
	return u, v, foot, p.DistanceTo(foot)
}

func (s *Sphere) PeriodicU() (bool, float64) { return true, 2 * math.Pi }
func (s *Sphere) PeriodicV() (bool, float64) { return false, 0 }
