package topology

import (
	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// VertexID, EdgeID, CoedgeID, LoopID, FaceID and ShellID are stable
// arena indices, unique for the lifetime of the owning Body and never
// reused even after the entity they name is killed.
type (
	VertexID int
	EdgeID   int
	CoedgeID int
	LoopID   int
	FaceID   int
	ShellID  int
)

// NoVertex, NoEdge, NoCoedge, NoLoop, NoFace and NoShell are the
// sentinel "absent reference" values for each ID type, analogous to
// tsp/eulerian.go's twin[e] == -1 for an unmatched half-edge.
const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoCoedge CoedgeID = -1
	NoLoop   LoopID   = -1
	NoFace   FaceID   = -1
	NoShell  ShellID  = -1
)

// Vertex is a point in space. edge names one incident edge, seeding
// the vertex-edge adjacency walk; a vertex with degree 0 (the MVFS
// bootstrap vertex before any MEV) leaves it NoEdge.
type Vertex struct {
	Point gmath.Vec3
	dead  bool
	edge  EdgeID
}

// Edge carries the underlying curve and its two coedge uses. coedges[1]
// is NoCoedge for an edge on the free boundary of an open (sheet) body.
type Edge struct {
	Curve  geometry.Curve
	Domain geometry.Domain
	dead   bool
	tail   [2]VertexID // the edge's two endpoints, in curve-parameter order
	coedge [2]CoedgeID
}

// Coedge is one directed use of an edge around a loop: next/prev walk
// the loop, partner crosses to the edge's other use.
type Coedge struct {
	dead        bool
	edge        EdgeID
	loop        LoopID
	next, prev  CoedgeID
	partner     CoedgeID
	orientation bool // true: traverses Edge.Curve forward (tail[0]->tail[1])
}

// Origin returns the vertex this coedge starts from, honoring
// orientation.
func (c Coedge) originOf(e Edge) VertexID {
	if c.orientation {
		return e.tail[0]
	}
	return e.tail[1]
}

// Loop is a cyclic chain of coedges bounding one connected region of a
// face's parameter domain. outer marks the single loop per face that
// is its outer boundary; all others are inner (hole) loops.
type Loop struct {
	dead  bool
	face  FaceID
	first CoedgeID
	outer bool
}

// Face carries the underlying surface and the set of loops bounding
// it (loops[0] is always the outer loop). sameSense records whether
// the surface's natural normal agrees with the face's outward normal.
type Face struct {
	Surface   geometry.Surface
	UV        geometry.UVDomain
	dead      bool
	shell     ShellID
	loops     []LoopID
	sameSense bool
}

// Shell is one connected, closed (or open/sheet) boundary component of
// a body. genus counts through-holes contributed by this shell (the H
// term of the Euler-Poincare relation), set by the constructors and
// incremented by KFMRH rather than re-derived.
type Shell struct {
	dead  bool
	faces []FaceID
	genus int
	void  bool // true: an inner shell enclosing a cavity, not the outer boundary
}

// Genus returns the shell's through-hole count (the H term of the
// Euler-Poincare relation).
func (s Shell) Genus() int { return s.genus }

// Void reports whether the shell is an inner cavity boundary rather
// than a body's outer boundary.
func (s Shell) Void() bool { return s.void }
