package operations

import (
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Extrude sweeps a planar profile a fixed distance along direction,
// producing a closed solid: the profile ring itself becomes the start
// cap, a translated copy becomes the end cap, and the quad between
// each pair of corresponding edges becomes one sidewall face.
func Extrude(tol *gmath.ToleranceContext, profile Profile, direction gmath.Vec3, distance float64) (*topology.Body, error) {
	if len(profile.Points) < 3 {
		return nil, kerrors.Wrap("operations.Extrude", kerrors.ErrInvalidParameter, errShortProfile{})
	}
	if distance <= 0 {
		return nil, kerrors.Wrap("operations.Extrude", kerrors.ErrInvalidParameter, errNonPositiveDistance{})
	}
	dir, err := direction.Normalize()
	if err != nil {
		return nil, kerrors.Wrap("operations.Extrude", kerrors.ErrInvalidParameter, err)
	}

	bottom := profile.Embed()
	offset := dir.Scale(distance)
	top := make([]gmath.Vec3, len(bottom))
	for i, p := range bottom {
		top[i] = p.Add(offset)
	}

	soup := make([][]gmath.Vec3, 0, len(bottom)+2)
	soup = append(soup, reversed(bottom), top)
	soup = append(soup, sidewall(bottom, top)...)

	body, err := topology.NewFromPolygonSoup(tol, soup)
	if err != nil {
		return nil, kerrors.Wrap("operations.Extrude", kerrors.ErrTopologyError, err)
	}
	return body, nil
}

type errShortProfile struct{}

func (errShortProfile) Error() string { return "profile needs at least 3 points" }

type errNonPositiveDistance struct{}

func (errNonPositiveDistance) Error() string { return "distance must be positive" }
