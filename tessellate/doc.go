// Package tessellate converts a topology.Body into a discrete triangle
// mesh suitable for display or STL/native export, per the adaptive
// chord/angle-tolerance algorithm: each face is sampled independently
// (in parallel, via golang.org/x/sync/errgroup, mirroring the
// concurrency model's "data-parallel pass over independent faces with
// per-worker local buffers merged at the end" shape), then the
// per-face fragments are stitched into one watertight mesh by welding
// vertices that coincide within the body's linear tolerance.
//
// Tessellation never mutates the Body it reads.
package tessellate
