// Package novacad is the root of a 3D B-Rep geometric modeling kernel:
// exact analytic curves and surfaces, a boundary-representation
// topology graph, Boolean and feature operations over it, synchronous
// (direct-edit) modeling, tessellation, and STEP/STL/native
// interchange, all driven through the single procedural facade in
// kernel.
//
// Everything is organized under subpackages:
//
//	gmath/      — vectors, quaternions, transforms, robust predicates, tolerances
//	geometry/   — parametric curves and surfaces (line, arc, nurbs, plane, cylinder, ...)
//	topology/   — the vertex/edge/coedge/loop/face/shell B-Rep graph and its invariants
//	operations/ — Boolean union/subtract/intersect, fillet/chamfer/shell/draft, extrude/revolve/sweep/loft
//	synctech/   — direct-edit modeling: live rule detection, face moves, feature recognition
//	tessellate/ — triangle mesh faceting with chord/angle deviation bounds
//	step/       — ISO-10303-21 clear-text import/export
//	stl/        — ASCII/binary STL export
//	nativedump/ — a lossless native serialization of the B-Rep graph
//	kernel/     — the external facade: handles, operation context, error taxonomy
//	core/       — a generic graph primitive, reused by synctech's feature-region grouping
//	algorithms/ — BFS over core.Graph, used by the same feature-region grouping
//
// kernel is the one package an embedding application needs to import;
// the rest are its implementation.
package novacad
