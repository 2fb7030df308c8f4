package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// Cylinder is a right circular cylinder: Axis is the unit centerline
// direction, Radius > 0. u is the angle around the axis in
// [0, 2*Pi), v is the signed distance along Axis from Origin.
type Cylinder struct {
	Origin     gmath.Vec3
	Axis       gmath.Vec3 // unit
	RefX, RefY gmath.Vec3 // unit, orthogonal, orthogonal to Axis: the u=0 frame
	Radius     float64
	domain     UVDomain
}

// NewCylinder constructs a Cylinder of the given radius and axial
// extent [vLo, vHi]. ErrInvalidDefinition if radius <= 0 or axis is
// degenerate.
func NewCylinder(origin, axis gmath.Vec3, radius, vLo, vHi float64) (*Cylinder, error) {
	if radius <= 0 {
		return nil, ErrInvalidDefinition
	}
	unitAxis, err := axis.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	refX, refY := arbitraryOrthonormalBasis(unitAxis)
	return &Cylinder{
		Origin: origin, Axis: unitAxis, RefX: refX, RefY: refY, Radius: radius,
		domain: UVDomain{U: gmath.NewInterval(0, 2*math.Pi), V: gmath.NewInterval(vLo, vHi)},
	}, nil
}

// arbitraryOrthonormalBasis returns two unit vectors orthogonal to n
// and to each other, completing a right-handed frame; used by every
// axis-aligned analytic surface (cylinder, cone, torus) to establish a
// stable u=0 reference direction.
func arbitraryOrthonormalBasis(n gmath.Vec3) (gmath.Vec3, gmath.Vec3) {
	ref := gmath.Vec3{X: 0, Y: 0, Z: 1}
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = gmath.Vec3{X: 1, Y: 0, Z: 0}
	}
	x, _ := n.Cross(ref).Normalize()
	y := n.Cross(x)
	return x, y
}

func (c *Cylinder) UVDomain() UVDomain { return c.domain }

func (c *Cylinder) radial(u float64) gmath.Vec3 {
	return c.RefX.Scale(math.Cos(u)).Add(c.RefY.Scale(math.Sin(u)))
}

func (c *Cylinder) Evaluate(u, v float64) gmath.Vec3 {
	return c.Origin.Add(c.radial(u).Scale(c.Radius)).Add(c.Axis.Scale(v))
}

func (c *Cylinder) DerivativeU(u, v float64) gmath.Vec3 {
	tangent := c.RefX.Scale(-math.Sin(u)).Add(c.RefY.Scale(math.Cos(u)))
	return tangent.Scale(c.Radius)
}

func (c *Cylinder) DerivativeV(float64, float64) gmath.Vec3 { return c.Axis }

func (c *Cylinder) Normal(u, v float64) (gmath.Vec3, error) {
	return normalFromDerivatives(c.DerivativeU(u, v), c.DerivativeV(u, v))
}

func (c *Cylinder) BBox(sub UVDomain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	samples := 32
	step := sub.U.Width() / float64(samples)
	for i := 0; i <= samples; i++ {
		u := sub.U.Lo + step*float64(i)
		box = box.Extend(c.Evaluate(u, sub.V.Lo))
		box = box.Extend(c.Evaluate(u, sub.V.Hi))
	}
	return box
}

func (c *Cylinder) Project(p gmath.Vec3, sub UVDomain) (float64, float64, gmath.Vec3, float64) {
	rel := p.Sub(c.Origin)
	v := clampTo(rel.Dot(c.Axis), sub.V)
	planar := rel.Sub(c.Axis.Scale(rel.Dot(c.Axis)))
	x := planar.Dot(c.RefX)
	y := planar.Dot(c.RefY)
	u := math.Atan2(y, x)
	if u < 0 {
		u += 2 * math.Pi
	}
	u = wrapToDomain(u, sub.U)
	foot := c.Evaluate(u, v)
	return u, v, foot, p.DistanceTo(foot)
}

func (c *Cylinder) PeriodicU() (bool, float64) { return true, 2 * math.Pi }
func (c *Cylinder) PeriodicV() (bool, float64) { return false, 0 }

// wrapToDomain clamps a periodic angular parameter already known to lie
// in [0, 2*Pi) into sub's range, accounting for the case where sub
// itself is a sub-arc rather than the full circle.
func wrapToDomain(u float64, sub Domain) float64 {
	if sub.Contains(u) {
		return u
	}
	if sub.Contains(u - 2*math.Pi) {
		return u - 2*math.Pi
	}
	return clampTo(u, sub)
}
