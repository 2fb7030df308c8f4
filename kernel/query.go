package kernel

import (
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/tessellate"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// BoundingBox returns the world-space axis-aligned bounding box of the
// body behind h, computed from its tessellation (the cheapest way to
// get exact-enough bounds across every surface family, analytic or
// not, without a dedicated per-surface bounding routine).
func (k *Kernel) BoundingBox(oc *OperationContext, h Handle) (gmath.AABB, error) {
	b, err := k.lookup(h)
	if err != nil {
		return gmath.AABB{}, k.setLastError(kerrors.Wrap("kernel.BoundingBox", kerrors.ErrInvalidHandle, err))
	}
	mesh, err := tessellate.Tessellate(oc.context(), b)
	if err != nil {
		return gmath.AABB{}, k.setLastError(kerrors.Wrap("kernel.BoundingBox", kerrors.ErrGeometryError, err))
	}
	box := gmath.NewEmptyAABB()
	for _, p := range mesh.Positions {
		box = box.Extend(p)
	}
	return box, nil
}

// Transform returns a new handle naming a rigid-transformed copy of
// h's body. The transform is applied to a private copy (topology.Transform
// clones the body), so h stays live and its body is unchanged.
func (k *Kernel) Transform(h Handle, t gmath.Transform) (Handle, error) {
	b, err := k.lookup(h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Transform", kerrors.ErrInvalidHandle, err))
	}
	out, err := topology.Transform(b, t)
	if err != nil {
		return NoHandle, k.setLastError(err)
	}
	return k.store(out), nil
}

// Faces returns every face ID of the body behind h, for iteration.
func (k *Kernel) Faces(h Handle) ([]topology.FaceID, error) {
	b, err := k.lookup(h)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.Faces", kerrors.ErrInvalidHandle, err))
	}
	return b.FacesOfBody(), nil
}

// Edges returns every distinct edge ID reachable from the body's
// faces, deduplicated across shared boundaries.
func (k *Kernel) Edges(h Handle) ([]topology.EdgeID, error) {
	b, err := k.lookup(h)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.Edges", kerrors.ErrInvalidHandle, err))
	}
	seen := make(map[topology.EdgeID]bool)
	var out []topology.EdgeID
	for _, fid := range b.FacesOfBody() {
		edges, err := b.EdgesOfFace(fid)
		if err != nil {
			return nil, k.setLastError(kerrors.Wrap("kernel.Edges", kerrors.ErrTopologyError, err))
		}
		for _, eid := range edges {
			if !seen[eid] {
				seen[eid] = true
				out = append(out, eid)
			}
		}
	}
	return out, nil
}

// Vertices returns every distinct vertex ID reachable from the body's
// edges, deduplicated across shared endpoints.
func (k *Kernel) Vertices(h Handle) ([]topology.VertexID, error) {
	edges, err := k.Edges(h)
	if err != nil {
		return nil, err
	}
	b, err := k.lookup(h)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.Vertices", kerrors.ErrInvalidHandle, err))
	}
	seen := make(map[topology.VertexID]bool)
	var out []topology.VertexID
	for _, eid := range edges {
		tail, err := b.VerticesOfEdge(eid)
		if err != nil {
			return nil, k.setLastError(kerrors.Wrap("kernel.Vertices", kerrors.ErrTopologyError, err))
		}
		for _, v := range tail {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out, nil
}

// Body returns the live *topology.Body behind h, for callers (tests,
// synctech) that need direct read access beyond the handle facade.
func (k *Kernel) Body(h Handle) (*topology.Body, error) {
	b, err := k.lookup(h)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.Body", kerrors.ErrInvalidHandle, err))
	}
	return b, nil
}
