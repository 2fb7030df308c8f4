// Package topology implements the persistent-identity B-Rep incidence
// graph — vertex, edge, coedge, loop, face, shell, body — and the
// Euler operator set that is the only legal way to mutate it.
//
// Every entity kind lives in its own arena (index-addressed slice)
// owned by a Body; all intra-topology references are indices into
// those arenas rather than pointers, the same cycle-breaking trick
// core.Graph uses for its map-of-maps adjacency list, adapted here to
// a fixed, contiguous entity set where locality and O(1) reference
// resolution matter more than dynamic insertion/removal. Identities
// are never reused within a body's lifetime: killed entities are
// marked dead in place rather than recycled, so external handles
// taken before a mutation stay meaningful for diagnostics even if the
// entity they name is gone afterward.
//
// Coedges carry next/prev/partner links (the winged/half-edge
// discipline), the same twin-pointer shape as the Eulerian-circuit
// half-edge arrays in tsp/eulerian.go, generalized from a flat
// to/twin pair of slices to a richer per-coedge record that also
// carries loop and orientation.
package topology
