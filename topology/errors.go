package topology

import "errors"

// ErrPrecondition indicates an Euler operator's input does not satisfy
// its contract (e.g. MEF given two coedges from different loops).
var ErrPrecondition = errors.New("topology: operator precondition not met")

// ErrInvariantViolated indicates the post-operation self-test detected
// a broken manifold or Euler-Poincare invariant; the attempted
// mutation is not applied to the body returned to the caller.
var ErrInvariantViolated = errors.New("topology: invariant check failed")

// ErrDeadEntity indicates a reference names an entity that has been
// killed by a prior Euler operator.
var ErrDeadEntity = errors.New("topology: entity reference is dead")

// ErrInvalidReference indicates an ID is out of range for its arena.
var ErrInvalidReference = errors.New("topology: invalid entity reference")
