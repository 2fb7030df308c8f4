package operations

import (
	"gonum.org/v1/gonum/mat"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

const loftFitDegree = 2
const loftStationsPerSpan = 6

// Loft blends a sequence of same-point-count profiles (already placed
// in world space by Profile.Origin/UAxis/VAxis) into one solid. Rather
// than linearly interpolating between each pair of input stations,
// each of the profile's corresponding vertices is fit, across the
// given rails, to a low-degree least-squares polynomial in the rail
// parameter (solved with gonum/mat, the one general-purpose linear
// algebra solve anywhere in this package) and resampled at a finer
// set of stations — producing a smoothly blended rail surface rather
// than a faceted straight-line lean between profiles.
func Loft(tol *gmath.ToleranceContext, profiles []Profile) (*topology.Body, error) {
	if len(profiles) < 2 {
		return nil, kerrors.Wrap("operations.Loft", kerrors.ErrInvalidParameter, errTooFewStations{})
	}
	n := len(profiles[0].Points)
	if n < 3 {
		return nil, kerrors.Wrap("operations.Loft", kerrors.ErrInvalidParameter, errShortProfile{})
	}
	for _, p := range profiles {
		if len(p.Points) != n {
			return nil, kerrors.Wrap("operations.Loft", kerrors.ErrInvalidParameter, errMismatchedProfiles{})
		}
	}

	rawRings := make([][]gmath.Vec3, len(profiles))
	for s, p := range profiles {
		rawRings[s] = p.Embed()
	}

	degree := loftFitDegree
	if degree > len(profiles)-1 {
		degree = len(profiles) - 1
	}

	stations := (len(profiles)-1)*loftStationsPerSpan + 1
	rings := make([][]gmath.Vec3, stations)
	for i := 0; i < stations; i++ {
		rings[i] = make([]gmath.Vec3, n)
	}

	for v := 0; v < n; v++ {
		coeffsX := fitPolynomial(len(rawRings), degree, func(s int) float64 { return rawRings[s][v].X })
		coeffsY := fitPolynomial(len(rawRings), degree, func(s int) float64 { return rawRings[s][v].Y })
		coeffsZ := fitPolynomial(len(rawRings), degree, func(s int) float64 { return rawRings[s][v].Z })
		for i := 0; i < stations; i++ {
			t := float64(i) / float64(stations-1) * float64(len(rawRings)-1)
			rings[i][v] = gmath.Vec3{
				X: evalPolynomial(coeffsX, t),
				Y: evalPolynomial(coeffsY, t),
				Z: evalPolynomial(coeffsZ, t),
			}
		}
	}

	var soup [][]gmath.Vec3
	soup = append(soup, reversed(rings[0]), rings[stations-1])
	for i := 0; i < stations-1; i++ {
		soup = append(soup, sidewall(rings[i], rings[i+1])...)
	}

	body, err := topology.NewFromPolygonSoup(tol, soup)
	if err != nil {
		return nil, kerrors.Wrap("operations.Loft", kerrors.ErrTopologyError, err)
	}
	return body, nil
}

// fitPolynomial least-squares fits a degree-d polynomial to samples
// sample(0..count-1) taken at parameter values 0..count-1, returning
// coefficients lowest-order first.
func fitPolynomial(count, degree int, sample func(int) float64) []float64 {
	a := mat.NewDense(count, degree+1, nil)
	b := mat.NewDense(count, 1, nil)
	for i := 0; i < count; i++ {
		t := float64(i)
		p := 1.0
		for d := 0; d <= degree; d++ {
			a.Set(i, d, p)
			p *= t
		}
		b.Set(i, 0, sample(i))
	}
	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		// Degenerate rail (duplicate stations): fall back to a constant
		// polynomial equal to the first sample.
		coeffs := make([]float64, degree+1)
		if count > 0 {
			coeffs[0] = sample(0)
		}
		return coeffs
	}
	coeffs := make([]float64, degree+1)
	for d := 0; d <= degree; d++ {
		coeffs[d] = x.At(d, 0)
	}
	return coeffs
}

func evalPolynomial(coeffs []float64, t float64) float64 {
	var v, p float64 = 0, 1
	for _, c := range coeffs {
		v += c * p
		p *= t
	}
	return v
}

type errTooFewStations struct{}

func (errTooFewStations) Error() string { return "loft needs at least two profiles" }

type errMismatchedProfiles struct{}

func (errMismatchedProfiles) Error() string { return "all loft profiles must share the same point count" }
