package topology

// Clone returns a deep copy of b with every entity identity preserved:
// a VertexID/EdgeID/.../ShellID valid in b names the same entity in
// the clone. Callers take a Clone before a destructive sequence of
// Euler operators so a "before" view stays usable even after the
// original is mutated further, per the Body lifecycle contract.
func (b *Body) Clone() *Body {
	tol := *b.Tolerance
	out := &Body{
		vertices:  make([]Vertex, len(b.vertices)),
		edges:     make([]Edge, len(b.edges)),
		coedges:   make([]Coedge, len(b.coedges)),
		loops:     make([]Loop, len(b.loops)),
		faces:     make([]Face, len(b.faces)),
		shells:    make([]Shell, len(b.shells)),
		shellList: make([]ShellID, len(b.shellList)),
		Tolerance: &tol,
	}
	copy(out.vertices, b.vertices)
	copy(out.edges, b.edges)
	copy(out.coedges, b.coedges)
	copy(out.loops, b.loops)
	copy(out.faces, b.faces)
	copy(out.shellList, b.shellList)

	for i, f := range b.faces {
		out.faces[i].loops = make([]LoopID, len(f.loops))
		copy(out.faces[i].loops, f.loops)
	}
	for i, s := range b.shells {
		out.shells[i].faces = make([]FaceID, len(s.faces))
		copy(out.shells[i].faces, s.faces)
	}
	return out
}
