package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// Torus is the surface of revolution of a circle of MinorRadius about
// Axis (unit), with the circle's center tracing a ring of MajorRadius
// around Center. u is the angle around Axis (the major circle), v is
// the angle around the minor circle's own axis. MajorRadius must
// exceed MinorRadius for a ring torus (the only kind this kernel
// models); self-intersecting spindle/horn tori are out of scope.
type Torus struct {
	Center                   gmath.Vec3
	Axis                     gmath.Vec3
	RefX, RefY               gmath.Vec3
	MajorRadius, MinorRadius float64
	domain                   UVDomain
}

// NewTorus constructs a full ring Torus. ErrInvalidDefinition if either
// radius is non-positive, majorRadius <= minorRadius, or axis is
// degenerate.
func NewTorus(center, axis gmath.Vec3, majorRadius, minorRadius float64) (*Torus, error) {
	if majorRadius <= 0 || minorRadius <= 0 || majorRadius <= minorRadius {
		return nil, ErrInvalidDefinition
	}
	unitAxis, err := axis.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	refX, refY := arbitraryOrthonormalBasis(unitAxis)
	return &Torus{
		Center: center, Axis: unitAxis, RefX: refX, RefY: refY,
		MajorRadius: majorRadius, MinorRadius: minorRadius,
		domain: UVDomain{U: gmath.NewInterval(0, 2*math.Pi), V: gmath.NewInterval(0, 2*math.Pi)},
	}, nil
}

func (t *Torus) ringCenter(u float64) gmath.Vec3 {
	radial := t.RefX.Scale(math.Cos(u)).Add(t.RefY.Scale(math.Sin(u)))
	return t.Center.Add(radial.Scale(t.MajorRadius))
}

func (t *Torus) radialDir(u float64) gmath.Vec3 {
	d, _ := t.RefX.Scale(math.Cos(u)).Add(t.RefY.Scale(math.Sin(u))).Normalize()
	return d
}

func (t *Torus) UVDomain() UVDomain { return t.domain }

func (t *Torus) Evaluate(u, v float64) gmath.Vec3 {
	radial := t.radialDir(u)
	cv, sv := math.Cos(v), math.Sin(v)
	return t.ringCenter(u).Add(radial.Scale(t.MinorRadius * cv)).Add(t.Axis.Scale(t.MinorRadius * sv))
}

func (t *Torus) DerivativeU(u, v float64) gmath.Vec3 {
	const h = 1e-6
	return t.Evaluate(u+h, v).Sub(t.Evaluate(u-h, v)).Scale(1 / (2 * h))
}

func (t *Torus) DerivativeV(u, v float64) gmath.Vec3 {
	radial := t.radialDir(u)
	cv, sv := math.Cos(v), math.Sin(v)
	return radial.Scale(-t.MinorRadius * sv).Add(t.Axis.Scale(t.MinorRadius * cv))
}

func (t *Torus) Normal(u, v float64) (gmath.Vec3, error) {
	return normalFromDerivatives(t.DerivativeU(u, v), t.DerivativeV(u, v))
}

func (t *Torus) BBox(sub UVDomain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	samplesU, samplesV := 32, 32
	stepU := sub.U.Width() / float64(samplesU)
	stepV := sub.V.Width() / float64(samplesV)
	for i := 0; i <= samplesU; i++ {
		u := sub.U.Lo + stepU*float64(i)
		for j := 0; j <= samplesV; j++ {
			v := sub.V.Lo + stepV*float64(j)
			box = box.Extend(t.Evaluate(u, v))
		}
	}
	return box
}

func (t *Torus) Project(p gmath.Vec3, sub UVDomain) (float64, float64, gmath.Vec3, float64) {
	rel := p.Sub(t.Center)
	axial := t.Axis.Scale(rel.Dot(t.Axis))
	planar := rel.Sub(axial)
	if planar.LengthSq() < 1e-20 {
		// On the axis u is undefined, so the generic sampler handles it.
		return projectSurfaceBySampling(t, p, sub, 32, 32)
	}
	u := math.Atan2(planar.Dot(t.RefY), planar.Dot(t.RefX))
	if u < 0 {
		u += 2 * math.Pi
	}
	u = wrapToDomain(u, sub.U)

	ringPoint := t.ringCenter(u)
	toP := p.Sub(ringPoint)
	vAxial := toP.Dot(t.Axis)
	vRadial := toP.Dot(t.radialDir(u))
	v := math.Atan2(vAxial, vRadial)
	if v < 0 {
		v += 2 * math.Pi
	}
	v = wrapToDomain(v, sub.V)

	foot := t.Evaluate(u, v)
	return u, v, foot, p.DistanceTo(foot)
}

func (t *Torus) PeriodicU() (bool, float64) { return true, 2 * math.Pi }
func (t *Torus) PeriodicV() (bool, float64) { return true, 2 * math.Pi }
