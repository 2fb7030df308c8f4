package topology

import (
	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
)

// Transform returns a new Body with every vertex, edge curve and face
// surface carried through the rigid transform t. A rigid transform
// (rotation plus translation, no scale or shear) preserves arc length
// and swept angle, so every Curve's and Surface's own parameter domain
// is reused unchanged — only the defining origin and axes move. For
// cylinders, cones, spheres and tori the u=0 reference direction is
// recomputed from the moved axis by the geometry constructor rather
// than carried through t. b itself is untouched, matching the Body lifecycle contract
// that mutation only ever happens through an explicit operator, never
// in place on a caller's existing handle.
func Transform(b *Body, t gmath.Transform) (*Body, error) {
	out := b.Clone()

	for i := range out.vertices {
		if out.vertices[i].dead {
			continue
		}
		out.vertices[i].Point = t.Apply(out.vertices[i].Point)
	}

	for i := range out.edges {
		if out.edges[i].dead {
			continue
		}
		curve, err := transformCurve(out.edges[i].Curve, t)
		if err != nil {
			return nil, kerrors.Wrap("topology.Transform", kerrors.ErrGeometryError, err)
		}
		out.edges[i].Curve = curve
	}

	for i := range out.faces {
		if out.faces[i].dead {
			continue
		}
		surf, err := transformSurface(out.faces[i].Surface, t)
		if err != nil {
			return nil, kerrors.Wrap("topology.Transform", kerrors.ErrGeometryError, err)
		}
		out.faces[i].Surface = surf
	}

	return out, nil
}

// TransformCurve applies a rigid transform to a standalone curve,
// for callers outside this package (face-edit style operations) that
// need the same curve-rewrite Transform uses internally but don't hold
// a whole Body to run it over.
func TransformCurve(c geometry.Curve, t gmath.Transform) (geometry.Curve, error) {
	return transformCurve(c, t)
}

// TransformSurface is TransformCurve's surface counterpart.
func TransformSurface(s geometry.Surface, t gmath.Transform) (geometry.Surface, error) {
	return transformSurface(s, t)
}

func transformCurve(c geometry.Curve, t gmath.Transform) (geometry.Curve, error) {
	dom := c.Domain()
	switch cv := c.(type) {
	case *geometry.Line:
		return geometry.NewLine(t.Apply(cv.Origin), t.ApplyDir(cv.Direction), dom.Lo, dom.Hi)
	case *geometry.Arc:
		return geometry.NewArc(t.Apply(cv.Center), t.ApplyDir(cv.MajorAxis), t.ApplyDir(cv.MinorAxis), cv.RadiusX, cv.RadiusY, dom.Lo, dom.Hi)
	default:
		return nil, kerrors.ErrUnsupportedGeometry
	}
}

func transformSurface(s geometry.Surface, t gmath.Transform) (geometry.Surface, error) {
	uv := s.UVDomain()
	switch sf := s.(type) {
	case *geometry.Plane:
		return geometry.NewPlane(t.Apply(sf.Origin), t.ApplyDir(sf.U), t.ApplyDir(sf.V), uv.U.Lo, uv.U.Hi, uv.V.Lo, uv.V.Hi)
	case *geometry.Cylinder:
		return geometry.NewCylinder(t.Apply(sf.Origin), t.ApplyDir(sf.Axis), sf.Radius, uv.V.Lo, uv.V.Hi)
	case *geometry.Cone:
		return geometry.NewCone(t.Apply(sf.Apex), t.ApplyDir(sf.Axis), sf.HalfAngle, uv.V.Lo, uv.V.Hi)
	case *geometry.Sphere:
		return geometry.NewSphere(t.Apply(sf.Center), t.ApplyDir(sf.PoleAxis), sf.Radius)
	case *geometry.Torus:
		return geometry.NewTorus(t.Apply(sf.Center), t.ApplyDir(sf.Axis), sf.MajorRadius, sf.MinorRadius)
	default:
		return nil, kerrors.ErrUnsupportedGeometry
	}
}
