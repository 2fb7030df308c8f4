package topology

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// Body owns every entity reachable from it: all topology mutation
// happens through the Euler operators in euler.go, never by direct
// field assignment from higher layers — the single architectural rule
// this package exists to enforce.
type Body struct {
	vertices []Vertex
	edges    []Edge
	coedges  []Coedge
	loops    []Loop
	faces    []Face
	shells   []Shell

	shellList []ShellID // top-level shells belonging to this body

	Tolerance *gmath.ToleranceContext
}

// NewEmptyBody returns a Body with no entities, ready for MVFS.
func NewEmptyBody(tol *gmath.ToleranceContext) *Body {
	if tol == nil {
		tol = gmath.NewToleranceContext()
	}
	return &Body{Tolerance: tol}
}

func (b *Body) newVertex(p gmath.Vec3) VertexID {
	id := VertexID(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{Point: p, edge: NoEdge})
	return id
}

func (b *Body) newEdge(e Edge) EdgeID {
	id := EdgeID(len(b.edges))
	b.edges = append(b.edges, e)
	return id
}

func (b *Body) newCoedge(c Coedge) CoedgeID {
	id := CoedgeID(len(b.coedges))
	b.coedges = append(b.coedges, c)
	return id
}

func (b *Body) newLoop(l Loop) LoopID {
	id := LoopID(len(b.loops))
	b.loops = append(b.loops, l)
	return id
}

func (b *Body) newFace(f Face) FaceID {
	id := FaceID(len(b.faces))
	b.faces = append(b.faces, f)
	return id
}

func (b *Body) newShell(s Shell) ShellID {
	id := ShellID(len(b.shells))
	b.shells = append(b.shells, s)
	return id
}

// Vertex, Edge, Coedge, Loop, Face and Shell are read-only accessors;
// callers outside this package can inspect topology but not mutate it.
func (b *Body) Vertex(id VertexID) (Vertex, error) {
	if id < 0 || int(id) >= len(b.vertices) {
		return Vertex{}, ErrInvalidReference
	}
	return b.vertices[id], nil
}

func (b *Body) Edge(id EdgeID) (Edge, error) {
	if id < 0 || int(id) >= len(b.edges) {
		return Edge{}, ErrInvalidReference
	}
	return b.edges[id], nil
}

func (b *Body) Coedge(id CoedgeID) (Coedge, error) {
	if id < 0 || int(id) >= len(b.coedges) {
		return Coedge{}, ErrInvalidReference
	}
	return b.coedges[id], nil
}

func (b *Body) Loop(id LoopID) (Loop, error) {
	if id < 0 || int(id) >= len(b.loops) {
		return Loop{}, ErrInvalidReference
	}
	return b.loops[id], nil
}

func (b *Body) Face(id FaceID) (Face, error) {
	if id < 0 || int(id) >= len(b.faces) {
		return Face{}, ErrInvalidReference
	}
	return b.faces[id], nil
}

func (b *Body) Shell(id ShellID) (Shell, error) {
	if id < 0 || int(id) >= len(b.shells) {
		return Shell{}, ErrInvalidReference
	}
	return b.shells[id], nil
}

// Shells returns the top-level shell IDs belonging to this body.
func (b *Body) Shells() []ShellID {
	out := make([]ShellID, len(b.shellList))
	copy(out, b.shellList)
	return out
}

// Counts returns the live V, E, F, L entity counts across the whole
// body (the terms of the Euler-Poincare relation CheckInvariants
// enforces), for callers outside this package that want the same
// tallies the invariant self-test uses.
func (b *Body) Counts() (v, e, f, l int) {
	return b.counts()
}

// counts returns the live V, E, F, L entity counts across the whole
// body, used by the invariant self-test.
func (b *Body) counts() (v, e, f, l int) {
	for _, x := range b.vertices {
		if !x.dead {
			v++
		}
	}
	for _, x := range b.edges {
		if !x.dead {
			e++
		}
	}
	for _, x := range b.faces {
		if !x.dead {
			f++
		}
	}
	for _, x := range b.loops {
		if !x.dead {
			l++
		}
	}
	return
}
