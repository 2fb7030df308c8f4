package kernel

import (
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/operations"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

func (k *Kernel) two(op string, a, b Handle) (*topology.Body, *topology.Body, error) {
	ba, err := k.lookup(a)
	if err != nil {
		return nil, nil, k.setLastError(kerrors.Wrap(op, kerrors.ErrInvalidHandle, err))
	}
	bb, err := k.lookup(b)
	if err != nil {
		return nil, nil, k.setLastError(kerrors.Wrap(op, kerrors.ErrInvalidHandle, err))
	}
	return ba, bb, nil
}

// Unite returns a handle to the union of a and b.
func (k *Kernel) Unite(oc *OperationContext, a, b Handle) (Handle, error) {
	ba, bb, err := k.two("kernel.Unite", a, b)
	if err != nil {
		return NoHandle, err
	}
	out, err := operations.Unite(oc.context(), ba, bb)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Unite", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Subtract returns a handle to a with b removed.
func (k *Kernel) Subtract(oc *OperationContext, a, b Handle) (Handle, error) {
	ba, bb, err := k.two("kernel.Subtract", a, b)
	if err != nil {
		return NoHandle, err
	}
	out, err := operations.Subtract(oc.context(), ba, bb)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Subtract", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Intersect returns a handle to the overlap of a and b.
func (k *Kernel) Intersect(oc *OperationContext, a, b Handle) (Handle, error) {
	ba, bb, err := k.two("kernel.Intersect", a, b)
	if err != nil {
		return NoHandle, err
	}
	out, err := operations.Intersect(oc.context(), ba, bb)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Intersect", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Fillet rounds edges (by ID) on the body behind h with the given
// radius, applying one edge at a time (operations.Fillet's own scope).
func (k *Kernel) Fillet(oc *OperationContext, h Handle, edges []topology.EdgeID, radius float64, segments int) (Handle, error) {
	b, err := k.lookup(h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Fillet", kerrors.ErrInvalidHandle, err))
	}
	tol := oc.toleranceOr(k.GetTolerance())
	cur := b
	for _, e := range edges {
		cur, err = operations.Fillet(tol, cur, e, radius, segments)
		if err != nil {
			return NoHandle, k.setLastError(withEntity(kerrors.Wrap("kernel.Fillet", kerrors.ErrGeometryError, err), e))
		}
	}
	return k.store(cur), nil
}

// Chamfer bevels edges (by ID) on the body behind h by the given
// distance, applying one edge at a time.
func (k *Kernel) Chamfer(oc *OperationContext, h Handle, edges []topology.EdgeID, dist float64) (Handle, error) {
	b, err := k.lookup(h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Chamfer", kerrors.ErrInvalidHandle, err))
	}
	tol := oc.toleranceOr(k.GetTolerance())
	cur := b
	for _, e := range edges {
		cur, err = operations.Chamfer(tol, cur, e, dist)
		if err != nil {
			return NoHandle, k.setLastError(withEntity(kerrors.Wrap("kernel.Chamfer", kerrors.ErrGeometryError, err), e))
		}
	}
	return k.store(cur), nil
}

// Shell hollows the body behind h, removing openFaces and leaving the
// remainder at the given wall thickness.
func (k *Kernel) Shell(oc *OperationContext, h Handle, openFaces []topology.FaceID, thickness float64) (Handle, error) {
	b, err := k.lookup(h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Shell", kerrors.ErrInvalidHandle, err))
	}
	tol := oc.toleranceOr(k.GetTolerance())
	out, err := operations.Shell(tol, b, openFaces, thickness)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Shell", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Draft applies a pull-direction draft angle to the body behind h.
func (k *Kernel) Draft(oc *OperationContext, h Handle, neutralPlane, neutralNormal, pullDirection gmath.Vec3, angle float64) (Handle, error) {
	b, err := k.lookup(h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Draft", kerrors.ErrInvalidHandle, err))
	}
	tol := oc.toleranceOr(k.GetTolerance())
	out, err := operations.Draft(tol, b, neutralPlane, neutralNormal, pullDirection, angle)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Draft", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Extrude builds a new body by sweeping profile linearly.
func (k *Kernel) Extrude(oc *OperationContext, profile operations.Profile, direction gmath.Vec3, distance float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	tol := oc.toleranceOr(k.GetTolerance())
	out, err := operations.Extrude(tol, profile, direction, distance)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Extrude", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Revolve builds a new body by sweeping profile about an axis.
func (k *Kernel) Revolve(oc *OperationContext, profile operations.Profile, axisPoint, axisDir gmath.Vec3, angle, chordTolerance float64) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	tol := oc.toleranceOr(k.GetTolerance())
	out, err := operations.Revolve(tol, profile, axisPoint, axisDir, angle, chordTolerance)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Revolve", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Sweep builds a new body by sweeping profile along path.
func (k *Kernel) Sweep(oc *OperationContext, profile operations.Profile, path []gmath.Vec3) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	tol := oc.toleranceOr(k.GetTolerance())
	out, err := operations.Sweep(tol, profile, path)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Sweep", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}

// Loft builds a new body blending a sequence of profiles.
func (k *Kernel) Loft(oc *OperationContext, profiles []operations.Profile) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	tol := oc.toleranceOr(k.GetTolerance())
	out, err := operations.Loft(tol, profiles)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Loft", kerrors.ErrGeometryError, err))
	}
	return k.store(out), nil
}
