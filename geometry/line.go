package geometry

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// Line is an infinite-direction curve restricted to a parameter domain
// [Lo, Hi] measured in arc length from Origin along Direction (unit).
// A bounded segment is a Line together with a finite Domain; an
// unbounded construction line uses ±math.MaxFloat64 bounds.
type Line struct {
	Origin    gmath.Vec3
	Direction gmath.Vec3 // unit length
	domain    Domain
}

// NewLine returns a Line through origin along direction, restricted to
// [lo, hi] arc length. ErrInvalidDefinition is returned if direction
// cannot be normalized (zero vector).
func NewLine(origin, direction gmath.Vec3, lo, hi float64) (*Line, error) {
	unit, err := direction.Normalize()
	if err != nil {
		return nil, ErrInvalidDefinition
	}
	return &Line{Origin: origin, Direction: unit, domain: gmath.NewInterval(lo, hi)}, nil
}

func (l *Line) Domain() Domain { return l.domain }

func (l *Line) Evaluate(t float64) gmath.Vec3 {
	return l.Origin.Add(l.Direction.Scale(t))
}

func (l *Line) Derivative1(float64) gmath.Vec3 { return l.Direction }

func (l *Line) Derivative2(float64) gmath.Vec3 { return gmath.Zero3 }

func (l *Line) BBox(sub Domain) gmath.AABB {
	box := gmath.NewEmptyAABB()
	box = box.Extend(l.Evaluate(sub.Lo))
	box = box.Extend(l.Evaluate(sub.Hi))
	return box
}

func (l *Line) Project(p gmath.Vec3, sub Domain) (float64, gmath.Vec3, float64) {
	t := p.Sub(l.Origin).Dot(l.Direction)
	t = clampTo(t, sub)
	foot := l.Evaluate(t)
	return t, foot, p.DistanceTo(foot)
}

func (l *Line) Periodic() (bool, float64) { return false, 0 }
