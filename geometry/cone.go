package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// Cone is a right circular cone with apex at Apex, axis Axis (unit,
// pointing from apex toward the open end), and HalfAngle in (0, Pi/2)
// radians. u is the angle around the axis, v is the signed distance
// along the axis from Apex (v=0 is the apex itself, a singular point).
type Cone struct {
	Apex       gmath.Vec3
	Axis       gmath.Vec3
	RefX, RefY gmath.Vec3
	HalfAngle  float64
	domain     UVDomain
}

// NewCone constructs a Cone swept over axial range [vLo, vHi] (vLo may
// be 0 to include the apex). ErrInvalidDefinition if halfAngle is
// outside (0, Pi/2) or axis is degenerate.
func NewCone(apex, axis gmath.Vec3, halfAngle, vLo, vHi float64) (*Cone, error) {
	if halfAngle <= 0 || halfAngle >= math.Pi/2 {
		return nil, ErrInvalidDefinition
	}
	unitAxis, err := axis.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	refX, refY := arbitraryOrthonormalBasis(unitAxis)
	return &Cone{
		Apex: apex, Axis: unitAxis, RefX: refX, RefY: refY, HalfAngle: halfAngle,
		domain: UVDomain{U: gmath.NewInterval(0, 2*math.Pi), V: gmath.NewInterval(vLo, vHi)},
	}, nil
}

func (c *Cone) radiusAt(v float64) float64 { return v * math.Tan(c.HalfAngle) }

func (c *Cone) UVDomain() UVDomain { return c.domain }

func (c *Cone) Evaluate(u, v float64) gmath.Vec3 {
	r := c.radiusAt(v)
	radial := c.RefX.Scale(math.Cos(u)).Add(c.RefY.Scale(math.Sin(u)))
	return c.Apex.Add(c.Axis.Scale(v)).Add(radial.Scale(r))
}

func (c *Cone) DerivativeU(u, v float64) gmath.Vec3 {
	r := c.radiusAt(v)
	tangent := c.RefX.Scale(-math.Sin(u)).Add(c.RefY.Scale(math.Cos(u)))
	return tangent.Scale(r)
}

func (c *Cone) DerivativeV(u, v float64) gmath.Vec3 {
	radial := c.RefX.Scale(math.Cos(u)).Add(c.RefY.Scale(math.Sin(u)))
	return c.Axis.Add(radial.Scale(math.Tan(c.HalfAngle)))
}

func (c *Cone) Normal(u, v float64) (gmath.Vec3, error) {
	du := c.DerivativeU(u, v)
	if du.LengthSq() < 1e-20 {
		return gmath.Zero3, ErrDegenerate
	}
	return normalFromDerivatives(du, c.DerivativeV(u, v))
}

func (c *Cone) BBox(sub UVDomain) gmath.AABB {
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

func (c *Cone) Project(p gmath.Vec3, sub UVDomain) (float64, float64, gmath.Vec3, float64) {
	// Closest point on a cone's surface to an arbitrary point has no
	// simple closed form once off-axis; use the generic surface
	// sampler (grid seeding plus refinement), which the apex
	// singularity (radiusAt(0) == 0) does not perturb since Evaluate
	// stays well-defined there.
	return projectSurfaceBySampling(c, p, sub, 32, 16)
}

func (c *Cone) PeriodicU() (bool, float64) { return true, 2 * math.Pi }
func (c *Cone) PeriodicV() (bool, float64) { return false, 0 }
