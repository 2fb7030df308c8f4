package operations

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Sweep carries a planar profile along an open polyline path, rotating
// the profile's own 2D basis at each station by the minimal rotation
// that carries the previous station's tangent onto the next one (a
// discrete rotation-minimizing frame), so a cross-section swept along
// a bent path does not twist.
func Sweep(tol *gmath.ToleranceContext, profile Profile, path []gmath.Vec3) (*topology.Body, error) {
	if len(profile.Points) < 3 {
		return nil, kerrors.Wrap("operations.Sweep", kerrors.ErrInvalidParameter, errShortProfile{})
	}
	if len(path) < 2 {
		return nil, kerrors.Wrap("operations.Sweep", kerrors.ErrInvalidParameter, errShortPath{})
	}

	u, v := profile.UAxis, profile.VAxis
	tangent := path[1].Sub(path[0])
	t0, err := tangent.Normalize()
	if err != nil {
		return nil, kerrors.Wrap("operations.Sweep", kerrors.ErrGeometryError, err)
	}

	rings := make([][]gmath.Vec3, len(path))
	curU, curV, curT := u, v, t0
	rings[0] = embedAt(profile.Points, path[0], curU, curV)

	for i := 1; i < len(path); i++ {
		var nextT gmath.Vec3
		if i < len(path)-1 {
			d := path[i+1].Sub(path[i-1])
			nextT, err = d.Normalize()
		} else {
			d := path[i].Sub(path[i-1])
			nextT, err = d.Normalize()
		}
		if err != nil {
			return nil, kerrors.Wrap("operations.Sweep", kerrors.ErrGeometryError, err)
		}
		curU, curV = rotateFrame(curU, curV, curT, nextT)
		curT = nextT
		rings[i] = embedAt(profile.Points, path[i], curU, curV)
	}

	var soup [][]gmath.Vec3
	soup = append(soup, reversed(rings[0]), rings[len(rings)-1])
	for i := 0; i < len(rings)-1; i++ {
		soup = append(soup, sidewall(rings[i], rings[i+1])...)
	}

	body, err := topology.NewFromPolygonSoup(tol, soup)
	if err != nil {
		return nil, kerrors.Wrap("operations.Sweep", kerrors.ErrTopologyError, err)
	}
	return body, nil
}

func embedAt(pts []gmath.Vec2, origin, u, v gmath.Vec3) []gmath.Vec3 {
	out := make([]gmath.Vec3, len(pts))
	for i, p := range pts {
		out[i] = origin.Add(u.Scale(p.X)).Add(v.Scale(p.Y))
	}
	return out
}

// rotateFrame applies the minimal rotation mapping from onto to to u
// and v, keeping the profile basis from twisting as the path bends.
func rotateFrame(u, v, from, to gmath.Vec3) (gmath.Vec3, gmath.Vec3) {
	axis := from.Cross(to)
	sinTheta := axis.Length()
	cosTheta := from.Dot(to)
	if sinTheta < 1e-12 {
		if cosTheta > 0 {
			return u, v
		}
		// 180-degree reversal: no well-defined axis from the cross
		// product, pick any vector perpendicular to 'from'.
		axis = arbitraryPerp(from)
		sinTheta = 1
		cosTheta = -1
	}
	unitAxis, _ := axis.Normalize()
	angle := math.Atan2(sinTheta, cosTheta)
	q, err := gmath.QuaternionFromAxisAngle(unitAxis, angle)
	if err != nil {
		return u, v
	}
	return q.Rotate(u), q.Rotate(v)
}

func arbitraryPerp(v gmath.Vec3) gmath.Vec3 {
	if math.Abs(v.X) < 0.9 {
		return gmath.Vec3{X: 1}.Cross(v)
	}
	return gmath.Vec3{Y: 1}.Cross(v)
}

type errShortPath struct{}

func (errShortPath) Error() string { return "sweep path needs at least two points" }
