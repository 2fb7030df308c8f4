package geometry

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// Plane is an infinite plane restricted to a rectangular (u, v) domain
// in its own basis: Origin + u*U + v*V.
type Plane struct {
	Origin gmath.Vec3
	U, V   gmath.Vec3 // unit, orthogonal
	domain UVDomain
}

// NewPlane constructs a Plane from an origin and two in-plane
// directions (need not be unit on input), restricted to [uLo,uHi] x
// [vLo,vHi]. ErrInvalidDefinition if the directions are degenerate or
// not (approximately) orthogonal.
func NewPlane(origin, uDir, vDir gmath.Vec3, uLo, uHi, vLo, vHi float64) (*Plane, error) {
	u, err := uDir.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	v, err := vDir.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	if d := u.Dot(v); d > 1e-6 || d < -1e-6 {
		return nil, ErrInvalidDefinition
	}
	return &Plane{
		Origin: origin, U: u, V: v,
		domain: UVDomain{U: gmath.NewInterval(uLo, uHi), V: gmath.NewInterval(vLo, vHi)},
	}, nil
}

// NormalVector returns the plane's constant unit normal, U x V.
func (p *Plane) NormalVector() gmath.Vec3 {
	n, _ := p.U.Cross(p.V).Normalize()
	return n
}

func (p *Plane) UVDomain() UVDomain { return p.domain }

func (p *Plane) Evaluate(u, v float64) gmath.Vec3 {
	return p.Origin.Add(p.U.Scale(u)).Add(p.V.Scale(v))
}

func (p *Plane) DerivativeU(float64, float64) gmath.Vec3 { return p.U }
func (p *Plane) DerivativeV(float64, float64) gmath.Vec3 { return p.V }

func (p *Plane) Normal(u, v float64) (gmath.Vec3, error) {
	return normalFromDerivatives(p.DerivativeU(u, v), p.DerivativeV(u, v))
}

func (p *Plane) BBox(sub UVDomain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	for _, u := range []float64{sub.U.Lo, sub.U.Hi} {
		for _, v := range []float64{sub.V.Lo, sub.V.Hi} {
			box = box.Extend(p.Evaluate(u, v))
		}
	}
	return box
}

func (p *Plane) Project(point gmath.Vec3, sub UVDomain) (float64, float64, gmath.Vec3, float64) {
	rel := point.Sub(p.Origin)
	u := clampTo(rel.Dot(p.U), sub.U)
	v := clampTo(rel.Dot(p.V), sub.V)
	foot := p.Evaluate(u, v)
	return u, v, foot, point.DistanceTo(foot)
}

func (p *Plane) PeriodicU() (bool, float64) { return false, 0 }
func (p *Plane) PeriodicV() (bool, float64) { return false, 0 }
