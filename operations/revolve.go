package operations

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

const revolveMinSegments = 8
const revolveMaxSegments = 256

// Revolve sweeps a planar profile angle radians about the axis through
// axisPoint in direction axisDir, faceting the sweep into enough flat
// sidewall strips to stay within chordTolerance of the true
// revolution. A full 2*pi revolve closes the last station back onto
// the first without end caps; a partial revolve gets a start and an
// end cap at the profile's own orientation.
func Revolve(tol *gmath.ToleranceContext, profile Profile, axisPoint, axisDir gmath.Vec3, angle, chordTolerance float64) (*topology.Body, error) {
	if len(profile.Points) < 3 {
		return nil, kerrors.Wrap("operations.Revolve", kerrors.ErrInvalidParameter, errShortProfile{})
	}
	if angle <= 0 || angle > 2*math.Pi+1e-9 {
		return nil, kerrors.Wrap("operations.Revolve", kerrors.ErrInvalidParameter, errBadAngle{})
	}
	axis, err := axisDir.Normalize()
	if err != nil {
		return nil, kerrors.Wrap("operations.Revolve", kerrors.ErrInvalidParameter, err)
	}
	if chordTolerance <= 0 {
		chordTolerance = 0.01
	}

	radius := maxDistanceFromAxis(profile.Embed(), axisPoint, axis)
	segments := revolutionSegments(angle, radius, chordTolerance)

	full := angle > 2*math.Pi-1e-6
	stations := segments
	if !full {
		stations = segments + 1
	}

	rings := make([][]gmath.Vec3, stations)
	base := profile.Embed()
	for s := 0; s < stations; s++ {
		theta := angle * float64(s) / float64(segments)
		q, _ := gmath.QuaternionFromAxisAngle(axis, theta)
		ring := make([]gmath.Vec3, len(base))
		for i, p := range base {
			d := p.Sub(axisPoint)
			ring[i] = axisPoint.Add(q.Rotate(d))
		}
		rings[s] = ring
	}

	var soup [][]gmath.Vec3
	loopCount := segments
	if !full {
		loopCount = stations - 1
	}
	for s := 0; s < loopCount; s++ {
		next := (s + 1) % stations
		soup = append(soup, sidewall(rings[s], rings[next])...)
	}
	if !full {
		soup = append(soup, reversed(rings[0]), rings[stations-1])
	}

	body, err := topology.NewFromPolygonSoup(tol, soup)
	if err != nil {
		return nil, kerrors.Wrap("operations.Revolve", kerrors.ErrTopologyError, err)
	}
	return body, nil
}

func maxDistanceFromAxis(points []gmath.Vec3, axisPoint, axis gmath.Vec3) float64 {
	var maxR float64
	for _, p := range points {
		d := p.Sub(axisPoint)
		perp := d.Sub(axis.Scale(d.Dot(axis)))
		if r := perp.Length(); r > maxR {
			maxR = r
		}
	}
	return maxR
}

func revolutionSegments(angle, radius, chordTol float64) int {
	if radius < 1e-9 {
		return revolveMinSegments
	}
	// Standard sagitta bound: chord error for a segment spanning
	// half-angle h at radius r is r*(1-cos(h)).
	half := math.Acos(math.Max(-1, 1-chordTol/radius))
	if half <= 0 || math.IsNaN(half) {
		return revolveMaxSegments
	}
	n := int(math.Ceil(angle / (2 * half)))
	if n < revolveMinSegments {
		n = revolveMinSegments
	}
	if n > revolveMaxSegments {
		n = revolveMaxSegments
	}
	return n
}

type errBadAngle struct{}

func (errBadAngle) Error() string { return "revolve angle must be in (0, 2*pi]" }
