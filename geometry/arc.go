package geometry

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// Arc is a circular or elliptic arc lying in the plane spanned by
// MajorAxis and MinorAxis (both unit, mutually orthogonal), centered
// at Center, swept over a parameter domain measured in radians.
// RadiusX == RadiusY degenerates to a circle; a domain width of 2*Pi
// (within the angular tolerance used by Periodic) is a full closed
// ellipse/circle rather than a proper sub-arc.
type Arc struct {
	Center               gmath.Vec3
	MajorAxis, MinorAxis gmath.Vec3 // unit, orthogonal
	RadiusX, RadiusY     float64
	domain               Domain
}

// NewArc constructs an Arc. majorAxis and minorAxis need not be unit
// length on input; they are normalized and must be non-degenerate and
// (approximately) orthogonal, else ErrInvalidDefinition is returned.
func NewArc(center, majorAxis, minorAxis gmath.Vec3, radiusX, radiusY, startAngle, endAngle float64) (*Arc, error) {
	if radiusX <= 0 || radiusY <= 0 {
		return nil, ErrInvalidDefinition
	}
	u, err := majorAxis.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	v, err := minorAxis.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	if math.Abs(u.Dot(v)) > 1e-6 {
		return nil, ErrInvalidDefinition
	}
	return &Arc{
		Center: center, MajorAxis: u, MinorAxis: v,
		RadiusX: radiusX, RadiusY: radiusY,
		domain: gmath.NewInterval(startAngle, endAngle),
	}, nil
}

func (a *Arc) Domain() Domain { return a.domain }

func (a *Arc) Evaluate(t float64) gmath.Vec3 {
	c, s := math.Cos(t), math.Sin(t)
	return a.Center.
		Add(a.MajorAxis.Scale(a.RadiusX * c)).
		Add(a.MinorAxis.Scale(a.RadiusY * s))
}

func (a *Arc) Derivative1(t float64) gmath.Vec3 {
	c, s := math.Cos(t), math.Sin(t)
	return a.MajorAxis.Scale(-a.RadiusX * s).Add(a.MinorAxis.Scale(a.RadiusY * c))
}

func (a *Arc) Derivative2(t float64) gmath.Vec3 {
	c, s := math.Cos(t), math.Sin(t)
	return a.MajorAxis.Scale(-a.RadiusX * c).Add(a.MinorAxis.Scale(-a.RadiusY * s))
}

func (a *Arc) BBox(sub Domain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	samples := 64
	step := sub.Width() / float64(samples)
	for i := 0; i <= samples; i++ {
		box = box.Extend(a.Evaluate(sub.Lo + step*float64(i)))
	}
	return box
}

// Project projects p onto the ellipse by Newton iteration on the
// angular parameter, seeded from the angle of p's projection into the
// ellipse's own plane — exact for a circle (RadiusX == RadiusY), an
// accurate iterative approximation otherwise.
func (a *Arc) Project(p gmath.Vec3, sub Domain) (float64, gmath.Vec3, float64) {
	rel := p.Sub(a.Center)
	x := rel.Dot(a.MajorAxis)
	y := rel.Dot(a.MinorAxis)
	t := math.Atan2(y/a.RadiusY, x/a.RadiusX)

	for iter := 0; iter < 20; iter++ {
		c, s := math.Cos(t), math.Sin(t)
		// f(t) = (x - Rx cos t)(Rx sin t) + (y - Ry sin t)(-Ry cos t)... use
		// the standard closest-point-on-ellipse Newton update.
		fx := a.RadiusX * s * (x - a.RadiusX*c)
		fy := a.RadiusY * c * (y - a.RadiusY*s)
		f := fx - fy
		fpx := a.RadiusX * (c*(x-a.RadiusX*c) + a.RadiusX*s*s)
		fpy := a.RadiusY * (-s*(y-a.RadiusY*s) + a.RadiusY*c*c)
		fp := fpx + fpy
		if fp == 0 {
			break
		}
		next := t - f/fp
		if math.Abs(next-t) < 1e-14 {
			t = next
			break
		}
		t = next
	}
	if periodic, period := a.Periodic(); !periodic {
		t = clampTo(t, sub)
	} else if t < sub.Lo {
		t += period
	} else if t > sub.Hi {
		t -= period
	}
	foot := a.Evaluate(t)
	return t, foot, p.DistanceTo(foot)
}

// Periodic reports true when the domain spans a full turn, within the
// angular resolution used as the closure tolerance.
func (a *Arc) Periodic() (bool, float64) {
	const period = 2 * math.Pi
	return a.domain.Width() >= period-1e-9, period
}
