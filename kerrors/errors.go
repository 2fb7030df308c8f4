// Package kerrors defines the kernel's closed error taxonomy: every
// failure any operation/, synctech/, tessellate/, step/, stl/ or
// nativedump/ call can produce resolves to exactly one of these
// sentinels, wrapped with operation-specific context via fmt.Errorf's
// %w verb. kernel re-exports these under its own names so external
// callers never need to import this package directly; it exists
// separately so the domain packages can return taxonomy errors without
// importing kernel itself (kernel imports all of them for its facade).
package kerrors

import "errors"

// InvalidHandle: a body, context, or other opaque handle does not name
// a live object — a stale handle after Release, or one from a
// different kernel instance.
var ErrInvalidHandle = errors.New("kerrors: invalid handle")

// InvalidParameter: an argument fails a simple, local precondition
// (negative radius, nil body, out-of-range index) independent of any
// other operation's state.
var ErrInvalidParameter = errors.New("kerrors: invalid parameter")

// PreconditionViolated: an argument is individually valid but the
// operation's precondition over several arguments or the body's
// current state fails (mismatched loop ownership, coedges not on the
// same loop, edge count too low for a closing operator).
var ErrPreconditionViolated = errors.New("kerrors: precondition violated")

// GeometryError: a geometric computation failed to produce a usable
// result — degenerate input, failed intersection, footpoint search
// that did not converge.
var ErrGeometryError = errors.New("kerrors: geometry error")

// TopologyError: an operation would leave (or found) the B-Rep graph
// in a state that fails the Euler-Poincare self-test or the coedge/
// loop-cycle invariants.
var ErrTopologyError = errors.New("kerrors: topology error")

// ToleranceExhausted: an iterative or adaptive routine (Newton
// refinement, marching, adaptive tessellation) could not converge
// within the configured linear or angular resolution.
var ErrToleranceExhausted = errors.New("kerrors: tolerance exhausted")

// UnsupportedGeometry: the operation is well-defined in general but
// this implementation does not handle the specific surface/curve
// combination presented (e.g. a Boolean between two bodies that mix
// open sheet shells with solid shells).
var ErrUnsupportedGeometry = errors.New("kerrors: unsupported geometry")

// Cancelled: the operation observed ctx.Done() at a phase boundary and
// unwound before committing any mutation.
var ErrCancelled = errors.New("kerrors: operation cancelled")

// OutOfMemory: an internal allocation (arena growth, worker-pool
// buffer) failed. Reserved for completeness; Go's runtime normally
// turns this into a panic rather than a returned error; no operation
// in this module currently returns it.
var ErrOutOfMemory = errors.New("kerrors: out of memory")

// NotImplemented: the operation is recognized but this kernel build
// does not carry an implementation for it yet.
var ErrNotImplemented = errors.New("kerrors: not implemented")

// Error wraps one taxonomy sentinel with the operation name and a
// human-readable detail, the single error type every exported kernel
// entry point returns. Unwrap exposes the sentinel for errors.Is.
type Error struct {
	Op     string
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

// Wrap builds an *Error for op. If err already is (or wraps) an *Error,
// its Kind and Detail are kept and only Op is re-tagged; otherwise the
// result carries kind, or GeometryError when kind is nil — the
// conservative default, since most geometry-layer failures are exactly
// that. Wrap returns nil for a nil err.
func Wrap(op string, kind error, err error) *Error {
	if err == nil {
		return nil
	}
	var ke *Error
	if errors.As(err, &ke) {
		return &Error{Op: op, Kind: ke.Kind, Detail: ke.Detail}
	}
	if kind == nil {
		kind = ErrGeometryError
	}
	return &Error{Op: op, Kind: kind, Detail: err.Error()}
}
