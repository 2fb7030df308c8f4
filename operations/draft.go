package operations

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Draft shears every face of b so that, measured from neutralPlane
// along pullDirection, each point moves perpendicular to pullDirection
// in proportion to its (signed) distance from the neutral plane times
// tan(angle) — the standard mold-release taper applied uniformly to
// the whole body rather than face-by-face, since the polygon-soup
// rebuild this package shares treats every face the same way.
func Draft(tol *gmath.ToleranceContext, b *topology.Body, neutralPlane, neutralNormal, pullDirection gmath.Vec3, angle float64) (*topology.Body, error) {
	pull, err := pullDirection.Normalize()
	if err != nil {
		return nil, kerrors.Wrap("operations.Draft", kerrors.ErrInvalidParameter, err)
	}
	nNorm, err := neutralNormal.Normalize()
	if err != nil {
		return nil, kerrors.Wrap("operations.Draft", kerrors.ErrInvalidParameter, err)
	}
	shearDir := pull.Sub(nNorm.Scale(pull.Dot(nNorm)))
	shearDir, err = shearDir.Normalize()
	if err != nil {
		// Pull direction is parallel to the neutral normal: shear has
		// no defined direction, draft degenerates to a no-op scale.
		shearDir = gmath.Vec3{}
	}
	tanAngle := math.Tan(angle)

	transform := func(p gmath.Vec3) gmath.Vec3 {
		d := p.Sub(neutralPlane).Dot(nNorm)
		return p.Add(shearDir.Scale(d * tanAngle))
	}

	faceIDs := b.FacesOfBody()
	var soup [][]gmath.Vec3
	for _, fid := range faceIDs {
		poly, _, err := facePolygon(b, fid)
		if err != nil {
			return nil, kerrors.Wrap("operations.Draft", kerrors.ErrUnsupportedGeometry, err)
		}
		ring := make([]gmath.Vec3, len(poly))
		for i, p := range poly {
			ring[i] = transform(p)
		}
		soup = append(soup, ring)
	}

	out, err := topology.NewFromPolygonSoup(tol, soup)
	if err != nil {
		return nil, kerrors.Wrap("operations.Draft", kerrors.ErrTopologyError, err)
	}
	return out, nil
}
