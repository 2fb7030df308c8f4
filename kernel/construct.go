package kernel

import (
	"fmt"
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/operations"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// circleSegments is the polygon resolution used by MakeCone's loft
// fallback for a general (non-apex, non-cylindrical) frustum — coarse
// enough to stay cheap, fine enough that chord deviation from the true
// circle is well under the default linear tolerance at the radii the
// primitive builders exercise in practice.
const circleSegments = 48

func circlePoints(radius float64) []gmath.Vec2 {
	pts := make([]gmath.Vec2, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(circleSegments)
		pts[i] = gmath.Vec2{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}

// MakeBox returns a handle to a w x h x d box with one corner at the
// origin, matching topology.NewBox.
func (k *Kernel) MakeBox(w, h, d float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	b, err := topology.NewBox(k.GetTolerance(), gmath.Vec3{}, w, h, d)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeBox", kerrors.ErrInvalidParameter, err))
	}
	return k.store(b), nil
}

// MakeCylinder returns a handle to a right circular cylinder of radius
// r and height h, base centered at the origin.
func (k *Kernel) MakeCylinder(r, h float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	b, err := topology.NewCylinderShell(k.GetTolerance(), gmath.Vec3{}, r, h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeCylinder", kerrors.ErrInvalidParameter, err))
	}
	return k.store(b), nil
}

// MakeSphere returns a handle to a full sphere of radius r centered at
// the origin.
func (k *Kernel) MakeSphere(r float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	b, err := topology.NewSphereShell(k.GetTolerance(), gmath.Vec3{}, r)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeSphere", kerrors.ErrInvalidParameter, err))
	}
	return k.store(b), nil
}

// MakeCone returns a handle to a frustum with base radius r1 at z=0,
// top radius r2 at z=h. r2 == 0 builds the exact analytic
// topology.NewConeShell; otherwise (including r1 == r2, a cylinder) it
// is built as a Loft between two circular profiles, since this
// kernel's analytic Cone/Cylinder primitives only cover the
// single-radius and apex-to-base cases directly.
func (k *Kernel) MakeCone(r1, r2, h float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	if r1 <= 0 || h <= 0 || r2 < 0 {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeCone", kerrors.ErrInvalidParameter, fmt.Errorf("base radius and height must be positive, top radius non-negative (got r1=%g, r2=%g, h=%g)", r1, r2, h)))
	}

	tol := k.GetTolerance()
	if r2 == 0 {
		halfAngle := math.Atan(r1 / h)
		b, err := topology.NewConeShell(tol, gmath.Vec3{}, halfAngle, h)
		if err != nil {
			return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeCone", kerrors.ErrInvalidParameter, err))
		}
		return k.store(b), nil
	}

	base := operations.Profile{Points: circlePoints(r1), Origin: gmath.Vec3{}, UAxis: gmath.Vec3{X: 1}, VAxis: gmath.Vec3{Y: 1}}
	top := operations.Profile{Points: circlePoints(r2), Origin: gmath.Vec3{Z: h}, UAxis: gmath.Vec3{X: 1}, VAxis: gmath.Vec3{Y: 1}}
	b, err := operations.Loft(tol, []operations.Profile{base, top})
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeCone", kerrors.ErrGeometryError, err))
	}
	return k.store(b), nil
}

// MakeTorus returns a handle to a ring torus with major radius R and
// minor (tube) radius r, centered at the origin.
func (k *Kernel) MakeTorus(majorR, minorR float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	b, err := topology.NewTorusShell(k.GetTolerance(), gmath.Vec3{}, majorR, minorR)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.MakeTorus", kerrors.ErrInvalidParameter, err))
	}
	return k.store(b), nil
}
