package operations

import (
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// facePolygon reads a face's single outer loop as a ring of vertex
// points, the same single-simple-loop restriction tessellate's
// boundary walker carries (a holed face has no single ring to return).
func facePolygon(b *topology.Body, faceID topology.FaceID) ([]gmath.Vec3, []topology.VertexID, error) {
	loops, err := b.LoopsOfFace(faceID)
	if err != nil {
		return nil, nil, err
	}
	if len(loops) != 1 {
		return nil, nil, kerrors.Wrap("operations.facePolygon", kerrors.ErrUnsupportedGeometry, errHoledFace{})
	}
	coedges, err := b.CoedgesAroundLoop(loops[0])
	if err != nil {
		return nil, nil, err
	}
	points := make([]gmath.Vec3, len(coedges))
	verts := make([]topology.VertexID, len(coedges))
	for i, c := range coedges {
		vid, err := b.CoedgeOrigin(c)
		if err != nil {
			return nil, nil, err
		}
		vtx, err := b.Vertex(vid)
		if err != nil {
			return nil, nil, err
		}
		points[i] = vtx.Point
		verts[i] = vid
	}
	return points, verts, nil
}

// newellNormal computes a robust polygon normal from a possibly
// non-convex 3D point ring by Newell's method, used wherever a face's
// outward direction is needed from its boundary alone.
func newellNormal(poly []gmath.Vec3) gmath.Vec3 {
	var n gmath.Vec3
	for i := range poly {
		a := poly[i]
		c := poly[(i+1)%len(poly)]
		n.X += (a.Y - c.Y) * (a.Z + c.Z)
		n.Y += (a.Z - c.Z) * (a.X + c.X)
		n.Z += (a.X - c.X) * (a.Y + c.Y)
	}
	u, err := n.Normalize()
	if err != nil {
		return gmath.Vec3{}
	}
	return u
}

type errHoledFace struct{}

func (errHoledFace) Error() string { return "face has inner loops; only simply-bounded faces are supported" }
