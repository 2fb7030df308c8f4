package topology

// CoedgesAroundLoop returns every coedge in loop's cycle, in chain
// order starting at Loop.first. It is an O(1)-per-step walk: one
// next-pointer dereference per coedge.
func (b *Body) CoedgesAroundLoop(loopID LoopID) ([]CoedgeID, error) {
	if err := b.checkLoop(loopID); err != nil {
		return nil, err
	}
	lp := b.loops[loopID]
	if lp.first == NoCoedge {
		return nil, nil
	}
	var out []CoedgeID
	start := lp.first
	cur := start
	for {
		out = append(out, cur)
		cur = b.coedges[cur].next
		if cur == start {
			break
		}
	}
	return out, nil
}

// FacesOfBody returns every live face in the body, across all shells.
func (b *Body) FacesOfBody() []FaceID {
	var out []FaceID
	for id, f := range b.faces {
		if !f.dead {
			out = append(out, FaceID(id))
		}
	}
	return out
}

// FacesOfShell returns the faces directly owned by shellID.
func (b *Body) FacesOfShell(shellID ShellID) ([]FaceID, error) {
	if err := b.checkShell(shellID); err != nil {
		return nil, err
	}
	out := make([]FaceID, len(b.shells[shellID].faces))
	copy(out, b.shells[shellID].faces)
	return out, nil
}

// LoopsOfFace returns face's bounding loops, loops[0] is always the
// outer loop by construction.
func (b *Body) LoopsOfFace(faceID FaceID) ([]LoopID, error) {
	if err := b.checkFace(faceID); err != nil {
		return nil, err
	}
	out := make([]LoopID, len(b.faces[faceID].loops))
	copy(out, b.faces[faceID].loops)
	return out, nil
}

// EdgesOfFace returns the distinct edges bounding faceID across all
// of its loops.
func (b *Body) EdgesOfFace(faceID FaceID) ([]EdgeID, error) {
	loops, err := b.LoopsOfFace(faceID)
	if err != nil {
		return nil, err
	}
	seen := make(map[EdgeID]bool)
	var out []EdgeID
	for _, lid := range loops {
		coedges, err := b.CoedgesAroundLoop(lid)
		if err != nil {
			return nil, err
		}
		for _, cid := range coedges {
			e := b.coedges[cid].edge
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// VerticesOfEdge returns edgeID's two endpoints, in curve-parameter
// order.
func (b *Body) VerticesOfEdge(edgeID EdgeID) ([2]VertexID, error) {
	if err := b.checkEdge(edgeID); err != nil {
		return [2]VertexID{}, err
	}
	return b.edges[edgeID].tail, nil
}

// CoedgesAroundVertex returns every coedge whose origin is vertexID,
// found by scanning the edges that touch it via the edge's own two
// tails and its coedges' orientation. The scan is O(E) rather than
// O(1): Vertex.edge seeds only a single incident edge, and the walk to
// enumerate the full umbrella would need a vertex-loop pointer per use
// that this kernel does not maintain, matching the minimal-annotation
// approach the topology component favors (see doc.go).
func (b *Body) CoedgesAroundVertex(vertexID VertexID) ([]CoedgeID, error) {
	if err := b.checkVertex(vertexID); err != nil {
		return nil, err
	}
	var out []CoedgeID
	for _, e := range b.edges {
		if e.dead {
			continue
		}
		for _, cid := range e.coedge {
			if cid == NoCoedge {
				continue
			}
			co := b.coedges[cid]
			if co.dead {
				continue
			}
			if co.originOf(e) == vertexID {
				out = append(out, cid)
			}
		}
	}
	return out, nil
}

// CoedgeEdge returns the edge a coedge uses, for callers outside this
// package (Coedge's fields are private so the value from Coedge(id)
// alone cannot answer this).
func (b *Body) CoedgeEdge(coedgeID CoedgeID) (EdgeID, error) {
	if err := b.checkCoedge(coedgeID); err != nil {
		return NoEdge, err
	}
	return b.coedges[coedgeID].edge, nil
}

// CoedgeOrientation reports whether coedgeID traverses its edge's curve
// forward (tail[0] -> tail[1]).
func (b *Body) CoedgeOrientation(coedgeID CoedgeID) (bool, error) {
	if err := b.checkCoedge(coedgeID); err != nil {
		return false, err
	}
	return b.coedges[coedgeID].orientation, nil
}

// CoedgeOrigin returns the vertex coedgeID starts from, honoring its
// orientation.
func (b *Body) CoedgeOrigin(coedgeID CoedgeID) (VertexID, error) {
	if err := b.checkCoedge(coedgeID); err != nil {
		return NoVertex, err
	}
	co := b.coedges[coedgeID]
	return co.originOf(b.edges[co.edge]), nil
}

// FaceShell returns the shell a face belongs to.
func (b *Body) FaceShell(faceID FaceID) (ShellID, error) {
	if err := b.checkFace(faceID); err != nil {
		return NoShell, err
	}
	return b.faces[faceID].shell, nil
}

// LoopOuter reports whether loopID is its face's outer boundary.
func (b *Body) LoopOuter(loopID LoopID) (bool, error) {
	if err := b.checkLoop(loopID); err != nil {
		return false, err
	}
	return b.loops[loopID].outer, nil
}

// EdgeAcrossPartner returns the coedge on the other side of coedgeID's
// edge, or NoCoedge if the edge is a free boundary (one-sided) use.
func (b *Body) EdgeAcrossPartner(coedgeID CoedgeID) (CoedgeID, error) {
	if err := b.checkCoedge(coedgeID); err != nil {
		return NoCoedge, err
	}
	return b.coedges[coedgeID].partner, nil
}
