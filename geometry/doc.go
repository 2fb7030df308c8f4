// Package geometry implements the parametric curves and surfaces of
// the NOVA-CAD kernel, and the three intersection routines
// (curve-curve, curve-surface, surface-surface) the rest of the kernel
// builds on.
//
// Curves and surfaces are closed, tagged-variant types, not an open
// interface hierarchy: Curve and Surface are interfaces with a small,
// fixed capability set (Evaluate, derivatives, BBox, Project, and —
// for surfaces — Normal), and every concrete type (Line, Arc — circular
// or elliptic —, NURBSCurve; Plane, Cylinder, Sphere, Cone, Torus, NURBSSurface)
// implements the full set. Dispatch is therefore a plain Go interface
// method call, never a type switch sprawled through call sites.
//
// Intersection routines return a slice of intersection elements rather
// than a channel: the volumes involved (dozens of points or a handful
// of marched curve samples per face pair) do not warrant the
// synchronization cost of a streaming producer, unlike the mesh
// triangle firehose in the tessellate/step packages.
package geometry
