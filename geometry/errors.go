package geometry

import "errors"

// ErrDegenerate indicates both intersection inputs coincide outside
// their useful domain (e.g. zero-length curve, zero-radius surface).
var ErrDegenerate = errors.New("geometry: degenerate input")

// ErrTangentialOnly indicates no transversal intersection exists but
// the inputs touch tangentially; callers decide whether this is an
// error for their context.
var ErrTangentialOnly = errors.New("geometry: tangential contact only")

// ErrNonConvergent indicates Newton refinement failed to reach the
// requested tolerance within the iteration budget.
var ErrNonConvergent = errors.New("geometry: iterative refinement did not converge")

// ErrParameterOutOfDomain indicates a parameter value fell outside a
// curve's or surface's canonical parameter domain.
var ErrParameterOutOfDomain = errors.New("geometry: parameter outside domain")

// ErrInvalidDefinition indicates a curve/surface constructor was given
// parameters that cannot define a valid geometric entity (e.g. a NURBS
// curve with mismatched knot/control-point counts, a negative radius).
var ErrInvalidDefinition = errors.New("geometry: invalid geometric definition")
