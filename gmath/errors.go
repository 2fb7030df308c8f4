package gmath

import "errors"

// ErrNotNormalizable indicates a zero-length vector or zero-magnitude
// quaternion was submitted to Normalize. This is the only failure mode
// in gmath: every other operation here is infallible by construction.
//
// Usage: if errors.Is(err, ErrNotNormalizable) { /* handle degenerate input */ }
var ErrNotNormalizable = errors.New("gmath: cannot normalize zero-length value")
