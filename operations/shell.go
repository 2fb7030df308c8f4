package operations

import (
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// vertexKey lets vertex-normal accumulation key on a VertexID directly
// since IDs are already stable within one body.
type vertexKey = topology.VertexID

// Shell hollows b to a uniform wall thickness, opening the result
// through every face named in openFaces. Each kept face becomes the
// outer wall unchanged; its vertices, offset inward by thickness along
// their averaged incident-face normal, become the matching inner wall;
// opened faces get a sidewall "lip" joining their outer boundary to
// the inner offset boundary instead of an inner cap, so the cavity
// behind them is reachable.
func Shell(tol *gmath.ToleranceContext, b *topology.Body, openFaces []topology.FaceID, thickness float64) (*topology.Body, error) {
	if thickness <= 0 {
		return nil, kerrors.Wrap("operations.Shell", kerrors.ErrInvalidParameter, errNonPositiveDistance{})
	}
	open := make(map[topology.FaceID]bool, len(openFaces))
	for _, f := range openFaces {
		open[f] = true
	}

	faceIDs := b.FacesOfBody()
	rings := make(map[topology.FaceID][]gmath.Vec3, len(faceIDs))
	vertIDs := make(map[topology.FaceID][]topology.VertexID, len(faceIDs))
	normalSum := make(map[vertexKey]gmath.Vec3)

	for _, fid := range faceIDs {
		poly, verts, err := facePolygon(b, fid)
		if err != nil {
			return nil, kerrors.Wrap("operations.Shell", kerrors.ErrUnsupportedGeometry, err)
		}
		rings[fid] = poly
		vertIDs[fid] = verts
		n := newellNormal(poly)
		for _, vid := range verts {
			normalSum[vid] = normalSum[vid].Add(n)
		}
	}

	offsetPoint := func(vid topology.VertexID, p gmath.Vec3) gmath.Vec3 {
		n, err := normalSum[vid].Normalize()
		if err != nil {
			return p
		}
		return p.Sub(n.Scale(thickness))
	}

	var soup [][]gmath.Vec3
	for _, fid := range faceIDs {
		poly := rings[fid]
		verts := vertIDs[fid]
		inner := make([]gmath.Vec3, len(poly))
		for i, p := range poly {
			inner[i] = offsetPoint(verts[i], p)
		}
		if open[fid] {
			soup = append(soup, sidewall(poly, reversed(inner))...)
			continue
		}
		soup = append(soup, poly, reversed(inner))
	}

	if len(soup) == 0 {
		return nil, kerrors.Wrap("operations.Shell", kerrors.ErrPreconditionViolated, errEmptyResult{})
	}

	out, err := topology.NewFromPolygonSoup(tol, soup)
	if err != nil {
		return nil, kerrors.Wrap("operations.Shell", kerrors.ErrTopologyError, err)
	}
	return out, nil
}
