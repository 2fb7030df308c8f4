// Package operations implements the solid-modeling operators built on
// top of the topology kernel: Boolean combination, extrusion,
// revolution, sweep, loft, fillet, chamfer, shelling and draft.
package operations

import (
	"context"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/tessellate"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Boolean operations facet both operands down to triangles, combine
// the triangle soups with the BSP-tree polygon-clip engine in bsp.go,
// and rebuild a single B-Rep shell from the result. This loses the
// operands' analytic surfaces across the cut — every output face is
// planar, a scope decision recorded in DESIGN.md — but handles any
// combination of the kernel's primitive and feature-built solids
// uniformly, without a surface-by-surface intersection special case
// for every (plane, cylinder, sphere, cone, torus) pair.
const defaultBooleanChordTolerance = 0.05

func tessellateForBoolean(ctx context.Context, b *topology.Body) (*tessellate.Mesh, error) {
	return tessellate.Tessellate(ctx, b, tessellate.WithChordTolerance(defaultBooleanChordTolerance))
}

func meshToPolygons(m *tessellate.Mesh) []bspPolygon {
	polys := make([]bspPolygon, 0, len(m.Triangles))
	for _, tri := range m.Triangles {
		verts := make([]bspVertex, 3)
		for i, idx := range tri {
			verts[i] = bspVertex{pos: m.Positions[idx], normal: m.Normals[idx]}
		}
		if verts[0].pos.Sub(verts[1].pos).Cross(verts[2].pos.Sub(verts[1].pos)).LengthSq() < 1e-20 {
			continue // degenerate (zero-area) triangle, drop it before it poisons a plane fit
		}
		polys = append(polys, newBSPPolygon(verts))
	}
	return polys
}

func polygonsToSoup(polys []bspPolygon) [][]gmath.Vec3 {
	soup := make([][]gmath.Vec3, 0, len(polys))
	for _, p := range polys {
		ring := make([]gmath.Vec3, len(p.verts))
		for i, v := range p.verts {
			ring[i] = v.pos
		}
		soup = append(soup, ring)
	}
	return soup
}

func faceAABBs(b *topology.Body) []gmath.AABB {
	ids := b.FacesOfBody()
	boxes := make([]gmath.AABB, 0, len(ids))
	for _, id := range ids {
		face, err := b.Face(id)
		if err != nil {
			continue
		}
		boxes = append(boxes, face.Surface.BBox(face.UV))
	}
	return boxes
}

type booleanOp int

const (
	opUnion booleanOp = iota
	opSubtract
	opIntersect
)

func combine(ctx context.Context, a, b *topology.Body, op booleanOp) (*topology.Body, error) {
	if a == nil || b == nil {
		return nil, kerrors.Wrap("operations.combine", kerrors.ErrInvalidParameter, errNilOperand{})
	}

	boxesA, boxesB := faceAABBs(a), faceAABBs(b)
	if !overlapping(boxesA, boxesB) {
		switch op {
		case opSubtract:
			return a, nil
		case opIntersect:
			return nil, kerrors.Wrap("operations.combine", kerrors.ErrPreconditionViolated, errEmptyResult{})
		}
		// disjoint union: fall through to the general path below: the
		// BSP clip of two non-overlapping trees is a no-op pass-through,
		// so it still produces the right answer, just without a
		// dedicated fast path.
	}

	meshA, err := tessellateForBoolean(ctx, a)
	if err != nil {
		return nil, kerrors.Wrap("operations.combine", kerrors.ErrGeometryError, err)
	}
	meshB, err := tessellateForBoolean(ctx, b)
	if err != nil {
		return nil, kerrors.Wrap("operations.combine", kerrors.ErrGeometryError, err)
	}

	polysA, polysB := meshToPolygons(meshA), meshToPolygons(meshB)

	var result []bspPolygon
	switch op {
	case opUnion:
		result = union(polysA, polysB)
	case opSubtract:
		result = subtract(polysA, polysB)
	case opIntersect:
		result = intersect(polysA, polysB)
	default:
		return nil, kerrors.Wrap("operations.combine", kerrors.ErrInvalidParameter, errUnknownOp{})
	}
	if len(result) == 0 {
		return nil, kerrors.Wrap("operations.combine", kerrors.ErrPreconditionViolated, errEmptyResult{})
	}

	tol := a.Tolerance
	out, err := topology.NewFromPolygonSoup(tol, polygonsToSoup(result))
	if err != nil {
		return nil, kerrors.Wrap("operations.combine", kerrors.ErrTopologyError, err)
	}
	return out, nil
}

// Unite returns the union of a and b as a single new body.
func Unite(ctx context.Context, a, b *topology.Body) (*topology.Body, error) {
	return combine(ctx, a, b, opUnion)
}

// Subtract returns a with b's volume removed.
func Subtract(ctx context.Context, a, b *topology.Body) (*topology.Body, error) {
	return combine(ctx, a, b, opSubtract)
}

// Intersect returns the shared volume of a and b.
func Intersect(ctx context.Context, a, b *topology.Body) (*topology.Body, error) {
	return combine(ctx, a, b, opIntersect)
}

type errNilOperand struct{}

func (errNilOperand) Error() string { return "boolean operand is nil" }

type errEmptyResult struct{}

func (errEmptyResult) Error() string { return "boolean combination produced an empty result" }

type errUnknownOp struct{}

func (errUnknownOp) Error() string { return "unrecognized boolean operator" }
