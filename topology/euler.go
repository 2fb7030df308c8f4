package topology

import (
	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// MVFS (Make-Vertex-Face-Shell) bootstraps a new Body from nothing: one
// shell, one face (bounded by a degenerate, edgeless loop), one vertex.
// Every other construction starts here.
func MVFS(tol *gmath.ToleranceContext, point gmath.Vec3, surface geometry.Surface, uv geometry.UVDomain) (*Body, FaceID, LoopID, VertexID, ShellID) {
	b := NewEmptyBody(tol)
	v := b.newVertex(point)
	loop := b.newLoop(Loop{first: NoCoedge, outer: true})
	face := b.newFace(Face{Surface: surface, UV: uv, loops: []LoopID{loop}, sameSense: true})
	b.loops[loop].face = face
	shell := b.newShell(Shell{faces: []FaceID{face}})
	b.faces[face].shell = shell
	b.shellList = append(b.shellList, shell)
	return b, face, loop, v, shell
}

// MEV (Make-Edge-Vertex) creates a new vertex and an edge from an
// existing vertex to it, appending one new coedge to the end of loop's
// chain. The edge's second coedge slot is left empty (NoCoedge): it is
// filled in later, either by closing the ring with MEVClose or by a
// neighboring face's own construction reusing this edge.
//
// Precondition: loop must exist and not be dead; from must be a live
// vertex.
func (b *Body) MEV(loop LoopID, from VertexID, newPoint gmath.Vec3, curve geometry.Curve, domain geometry.Domain) (VertexID, EdgeID, error) {
	if err := b.checkLoop(loop); err != nil {
		return NoVertex, NoEdge, err
	}
	if err := b.checkVertex(from); err != nil {
		return NoVertex, NoEdge, err
	}
	to := b.newVertex(newPoint)
	edgeID, coID := b.appendEdgeToLoop(loop, from, to, curve, domain)
	b.vertices[from].edge = edgeID
	b.vertices[to].edge = edgeID
	_ = coID
	return to, edgeID, nil
}

// MEVClose is the ring-closing counterpart to MEV: it adds the final
// edge of an open chain back to an existing vertex (the ring's start),
// completing loop into a true cycle. Every primitive constructed from
// a single ring of edges (box side, cylinder cap, ...) finishes its
// loop with exactly one MEVClose call.
//
// Precondition: loop must have at least one coedge already (via a
// prior MEV); to must be a live vertex distinct from from.
func (b *Body) MEVClose(loop LoopID, from, to VertexID, curve geometry.Curve, domain geometry.Domain) (EdgeID, error) {
	if err := b.checkLoop(loop); err != nil {
		return NoEdge, err
	}
	if err := b.checkVertex(from); err != nil {
		return NoEdge, err
	}
	if err := b.checkVertex(to); err != nil {
		return NoEdge, err
	}
	l := b.loops[loop]
	if l.first == NoCoedge {
		return NoEdge, ErrPrecondition
	}
	edgeID, _ := b.appendEdgeToLoop(loop, from, to, curve, domain)
	return edgeID, nil
}

// appendEdgeToLoop is the shared splice step behind MEV and MEVClose:
// create the edge and its forward coedge, and link it after the
// loop's current last coedge (loop.first.prev), or as the loop's only
// coedge if the loop was empty.
func (b *Body) appendEdgeToLoop(loop LoopID, from, to VertexID, curve geometry.Curve, domain geometry.Domain) (EdgeID, CoedgeID) {
	edgeID := b.newEdge(Edge{Curve: curve, Domain: domain, tail: [2]VertexID{from, to}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	co := b.newCoedge(Coedge{edge: edgeID, loop: loop, orientation: true})
	b.edges[edgeID].coedge[0] = co

	l := &b.loops[loop]
	if l.first == NoCoedge {
		b.coedges[co].next = co
		b.coedges[co].prev = co
		l.first = co
		return edgeID, co
	}
	last := b.coedges[l.first].prev
	b.coedges[last].next = co
	b.coedges[co].prev = last
	b.coedges[co].next = l.first
	b.coedges[l.first].prev = co
	return edgeID, co
}

// MEF (Make-Edge-Face) takes two coedges already in the same loop,
// adds a new edge between their origin vertices, and splits the loop
// in two: the chain from c1 to c2 stays with the original face/loop,
// the chain from c2 to c1 becomes a new loop bounding a new face.
//
// Precondition: c1 and c2 must be distinct, live coedges in the same
// loop.
func (b *Body) MEF(c1, c2 CoedgeID, newSurface geometry.Surface, newUV geometry.UVDomain, curve geometry.Curve, domain geometry.Domain) (FaceID, LoopID, EdgeID, error) {
	if err := b.checkCoedge(c1); err != nil {
		return NoFace, NoLoop, NoEdge, err
	}
	if err := b.checkCoedge(c2); err != nil {
		return NoFace, NoLoop, NoEdge, err
	}
	if c1 == c2 || b.coedges[c1].loop != b.coedges[c2].loop {
		return NoFace, NoLoop, NoEdge, ErrPrecondition
	}
	origLoopID := b.coedges[c1].loop
	origLoop := b.loops[origLoopID]
	faceID := origLoop.face

	v1 := b.coedges[c1].originOf(b.edges[b.coedges[c1].edge])
	v2 := b.coedges[c2].originOf(b.edges[b.coedges[c2].edge])

	bridgeEdge := b.newEdge(Edge{Curve: curve, Domain: domain, tail: [2]VertexID{v1, v2}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	fwd := b.newCoedge(Coedge{edge: bridgeEdge, orientation: true})
	rev := b.newCoedge(Coedge{edge: bridgeEdge, orientation: false})
	b.edges[bridgeEdge].coedge[0] = fwd
	b.edges[bridgeEdge].coedge[1] = rev
	b.coedges[fwd].partner = rev
	b.coedges[rev].partner = fwd

	c1prev := b.coedges[c1].prev
	c2prev := b.coedges[c2].prev

	// New loop: c2 .. c1prev, then fwd closes back to c2.
	newLoopID := b.newLoop(Loop{outer: true})
	b.coedges[c2prev].next = rev
	b.coedges[rev].prev = c2prev
	b.coedges[rev].next = c1
	b.coedges[c1].prev = rev
	b.coedges[rev].loop = origLoopID
	b.relinkLoop(origLoopID, c1)

	b.coedges[c1prev].next = fwd
	b.coedges[fwd].prev = c1prev
	b.coedges[fwd].next = c2
	b.coedges[c2].prev = fwd
	b.loops[newLoopID].first = c2
	b.relinkLoop(newLoopID, c2)

	newFaceID := b.newFace(Face{Surface: newSurface, UV: newUV, shell: b.faces[faceID].shell, loops: []LoopID{newLoopID}, sameSense: true})
	b.loops[newLoopID].face = newFaceID
	shellID := b.faces[faceID].shell
	b.shells[shellID].faces = append(b.shells[shellID].faces, newFaceID)

	return newFaceID, newLoopID, bridgeEdge, nil
}

// relinkLoop walks from start, setting every visited coedge's loop
// field to loopID; used after MEF/KEMR/MEKR re-partition a chain of
// coedges between loops.
func (b *Body) relinkLoop(loopID LoopID, start CoedgeID) {
	cur := start
	for {
		b.coedges[cur].loop = loopID
		cur = b.coedges[cur].next
		if cur == start {
			break
		}
	}
}

// KEMR (Kill-Edge-Make-Ring) removes an edge whose two coedges lie in
// the same face, reclassifying the loop that remains attached to the
// outer boundary chain as outer and the one that becomes disconnected
// from it as a new inner ring (a hole). This is the inverse of the
// MEF that bridged them.
//
// Precondition: edge's two coedge uses must both belong to the same
// face (reachable via different loops or the same loop depending on
// construction history).
func (b *Body) KEMR(edgeID EdgeID) error {
	if err := b.checkEdge(edgeID); err != nil {
		return err
	}
	e := b.edges[edgeID]
	if e.coedge[0] == NoCoedge || e.coedge[1] == NoCoedge {
		return ErrPrecondition
	}
	c1, c2 := e.coedge[0], e.coedge[1]
	l1, l2 := b.coedges[c1].loop, b.coedges[c2].loop
	f1, f2 := b.loops[l1].face, b.loops[l2].face
	if f1 != f2 {
		return ErrPrecondition
	}

	if l1 == l2 {
		return b.kemrSameLoop(edgeID, c1, c2, l1)
	}
	return b.kemrDifferentLoops(edgeID, c1, c2, l1, l2, f1)
}

// kemrSameLoop handles removing a bridge edge whose two coedges sit in
// one merged ring, splitting it back into an outer loop and a new
// inner (hole) loop.
func (b *Body) kemrSameLoop(edgeID EdgeID, c1, c2 CoedgeID, loopID LoopID) error {
	c1prev, c1next := b.coedges[c1].prev, b.coedges[c1].next
	c2prev, c2next := b.coedges[c2].prev, b.coedges[c2].next

	b.coedges[c1prev].next = c2next
	b.coedges[c2next].prev = c1prev
	b.coedges[c2prev].next = c1next
	b.coedges[c1next].prev = c2prev

	face := b.loops[loopID].face
	newLoopID := b.newLoop(Loop{face: face, first: c2next, outer: false})
	b.relinkLoop(newLoopID, c2next)
	b.loops[loopID].first = c1next
	b.relinkLoop(loopID, c1next)

	b.faces[face].loops = append(b.faces[face].loops, newLoopID)
	b.killEdge(edgeID, c1, c2)
	return nil
}

// kemrDifferentLoops merges two loops of the same face that were
// joined by edgeID into a single ring (removing the edge, then
// splicing the two chains together at the gap it leaves).
func (b *Body) kemrDifferentLoops(edgeID EdgeID, c1, c2 CoedgeID, l1, l2 LoopID, face FaceID) error {
	c1prev, c1next := b.coedges[c1].prev, b.coedges[c1].next
	c2prev, c2next := b.coedges[c2].prev, b.coedges[c2].next

	b.coedges[c1prev].next = c2next
	b.coedges[c2next].prev = c1prev
	b.coedges[c2prev].next = c1next
	b.coedges[c1next].prev = c2prev

	b.relinkLoop(l1, c1next)
	b.loops[l1].first = c1next
	b.loops[l2].dead = true

	out := b.faces[face].loops[:0]
	for _, lid := range b.faces[face].loops {
		if lid != l2 {
			out = append(out, lid)
		}
	}
	b.faces[face].loops = out

	b.killEdge(edgeID, c1, c2)
	return nil
}

func (b *Body) killEdge(edgeID EdgeID, c1, c2 CoedgeID) {
	b.edges[edgeID].dead = true
	b.coedges[c1].dead = true
	b.coedges[c2].dead = true
}

// MEKR (Make-Edge-Kill-Ring) is the inverse of KEMR: it adds a bridge
// edge joining an inner (hole) loop into the outer loop of the same
// face, merging the two loops back into one ring.
//
// Precondition: c1 must be a coedge of the face's outer loop, c2 a
// coedge of one of its inner loops.
func (b *Body) MEKR(c1, c2 CoedgeID, curve geometry.Curve, domain geometry.Domain) (EdgeID, error) {
	if err := b.checkCoedge(c1); err != nil {
		return NoEdge, err
	}
	if err := b.checkCoedge(c2); err != nil {
		return NoEdge, err
	}
	l1, l2 := b.coedges[c1].loop, b.coedges[c2].loop
	if l1 == l2 {
		return NoEdge, ErrPrecondition
	}
	face := b.loops[l1].face
	if b.loops[l2].face != face || !b.loops[l1].outer || b.loops[l2].outer {
		return NoEdge, ErrPrecondition
	}

	v1 := b.coedges[c1].originOf(b.edges[b.coedges[c1].edge])
	v2 := b.coedges[c2].originOf(b.edges[b.coedges[c2].edge])

	bridgeEdge := b.newEdge(Edge{Curve: curve, Domain: domain, tail: [2]VertexID{v1, v2}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	fwd := b.newCoedge(Coedge{edge: bridgeEdge, orientation: true})
	rev := b.newCoedge(Coedge{edge: bridgeEdge, orientation: false})
	b.edges[bridgeEdge].coedge[0] = fwd
	b.edges[bridgeEdge].coedge[1] = rev
	b.coedges[fwd].partner = rev
	b.coedges[rev].partner = fwd

	c1prev := b.coedges[c1].prev
	c2prev := b.coedges[c2].prev

	b.coedges[c1prev].next = fwd
	b.coedges[fwd].prev = c1prev
	b.coedges[fwd].next = c2
	b.coedges[c2].prev = fwd

	b.coedges[c2prev].next = rev
	b.coedges[rev].prev = c2prev
	b.coedges[rev].next = c1
	b.coedges[c1].prev = rev

	b.relinkLoop(l1, c1)
	b.loops[l2].dead = true

	out := b.faces[face].loops[:0]
	for _, lid := range b.faces[face].loops {
		if lid != l2 {
			out = append(out, lid)
		}
	}
	b.faces[face].loops = out

	return bridgeEdge, nil
}

// KFMRH (Kill-Face-Make-Ring-Hole) removes a face that bounds a
// through-hole. The face's loops become inner rings of the neighboring
// face across the first coedge of its first loop, the face is killed,
// and the owning shell's genus counter is incremented by one, so that
// F drops by one, L is unchanged and the Euler-Poincare relation still
// holds.
//
// Precondition: face must have at least one loop, a live owning shell
// and a neighboring face across that first coedge.
func (b *Body) KFMRH(faceID FaceID) error {
	if err := b.checkFace(faceID); err != nil {
		return err
	}
	f := b.faces[faceID]
	if len(f.loops) == 0 {
		return ErrPrecondition
	}
	shellID := f.shell
	if err := b.checkShell(shellID); err != nil {
		return err
	}

	target := NoFace
	if first := b.loops[f.loops[0]].first; first != NoCoedge {
		if p := b.coedges[first].partner; p != NoCoedge {
			target = b.loops[b.coedges[p].loop].face
		}
	}
	if target == NoFace || target == faceID {
		return ErrPrecondition
	}
	for _, lid := range f.loops {
		b.loops[lid].face = target
		b.loops[lid].outer = false
		b.faces[target].loops = append(b.faces[target].loops, lid)
	}
	b.faces[faceID].dead = true
	b.shells[shellID].genus++

	kept := b.shells[shellID].faces[:0]
	for _, fid := range b.shells[shellID].faces {
		if fid != faceID {
			kept = append(kept, fid)
		}
	}
	b.shells[shellID].faces = kept
	return nil
}
